// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const baseYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: volunteers
    user: matcher
    password: ${TEST_PG_PASSWORD}
  redis:
    address: localhost:6379
workers:
  rank-opportunities:
    enabled: true
    timeout: 5000
  notify-recommendations:
    enabled: false
`

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)

	assert.Equal(t, 6, cfg.Matching.TopMatches)
	assert.Equal(t, 4, cfg.Matching.Recommendations)
	assert.Equal(t, CatalogStatic, cfg.Matching.CatalogSource)
	assert.Equal(t, 10*time.Minute, cfg.Matching.CacheTTL())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8080, cfg.Metrics.Port)

	rank := GetWorkerConfig(cfg, "rank-opportunities")
	assert.Equal(t, 5000, rank.Timeout)
	assert.Equal(t, 5, rank.MaxJobsActive)
	assert.Equal(t, 3, rank.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "notify-recommendations"))
	assert.True(t, IsWorkerEnabled(cfg, "find-volunteers"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "find-volunteers").Timeout)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing broker",
			yaml:    "database:\n  redis:\n    address: x\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "file catalog without path",
			yaml:    baseYAML + "matching:\n  catalog_source: file\n",
			wantErr: "matching.catalog_file",
		},
		{
			name:    "elasticsearch catalog without addresses",
			yaml:    baseYAML + "matching:\n  catalog_source: elasticsearch\n",
			wantErr: "database.elasticsearch",
		},
		{
			name:    "unknown catalog",
			yaml:    baseYAML + "matching:\n  catalog_source: mongo\n",
			wantErr: "unknown matching.catalog_source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestElasticsearchConfig_GetAddresses(t *testing.T) {
	assert.Nil(t, ElasticsearchConfig{}.GetAddresses())
	assert.Equal(t, []string{"http://es:9200"}, ElasticsearchConfig{URL: "http://es:9200"}.GetAddresses())
	assert.Equal(t, []string{"a", "b"}, ElasticsearchConfig{Addresses: []string{"a", "b"}, URL: "c"}.GetAddresses())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
