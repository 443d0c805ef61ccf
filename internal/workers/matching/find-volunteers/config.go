// internal/workers/matching/find-volunteers/config.go
package findvolunteers

import "time"

type Config struct {
	Timeout  time.Duration
	Limit    int
	MinScore int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		Limit:    20,
		MinScore: 40,
	}
}
