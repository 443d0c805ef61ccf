// internal/workers/matching/rank-opportunities/config.go
package rankopportunities

import (
	"time"

	"volunteer-matching/internal/matching"
)

type Config struct {
	Timeout    time.Duration
	TopMatches int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		TopMatches: matching.DefaultTopMatches,
	}
}
