// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, mux *http.ServeMux, path string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	code, body := get(t, newServeMux(nil), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]readinessCheck
		code   int
		status string
	}{
		{"all healthy", map[string]readinessCheck{"postgres": ok, "redis": ok}, http.StatusOK, "ready"},
		{"one down", map[string]readinessCheck{"postgres": ok, "redis": down}, http.StatusServiceUnavailable, "not ready"},
		{"no checks", nil, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, newServeMux(tt.checks), "/ready")
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, body["status"])
		})
	}
}

func TestReady_ReportsFailingCheck(t *testing.T) {
	mux := newServeMux(map[string]readinessCheck{
		"zeebe": func(context.Context) error { return errors.New("zeebe health check failed") },
	})
	_, body := get(t, mux, "/ready")

	checks, ok := body["checks"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "zeebe health check failed", checks["zeebe"])
}

func TestMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newServeMux(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
