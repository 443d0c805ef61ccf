// internal/workers/matching/notify-recommendations/config.go
package notifyrecommendations

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	MaxItems     int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		EmailEnabled: true,
		SMSEnabled:   false,
		MaxItems:     5,
	}
}
