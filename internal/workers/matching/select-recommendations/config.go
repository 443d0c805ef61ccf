// internal/workers/matching/select-recommendations/config.go
package selectrecommendations

import (
	"time"

	"volunteer-matching/internal/matching"
)

type Config struct {
	Timeout         time.Duration
	TopMatches      int
	Recommendations int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         5 * time.Second,
		TopMatches:      matching.DefaultTopMatches,
		Recommendations: matching.DefaultRecommendations,
	}
}
