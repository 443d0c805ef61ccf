// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("../../configs/activity-registry.json")
	require.NoError(t, err)

	expected := []string{
		"calculate-match-score",
		"rank-opportunities",
		"select-recommendations",
		"find-volunteers",
		"record-match-feedback",
		"notify-recommendations",
	}
	for _, taskType := range expected {
		a, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.InputSchema, taskType)
		assert.NotEmpty(t, a.ErrorCodes, taskType)
	}

	_, ok := reg.Find("send-notification")
	assert.False(t, ok)
}

func TestLoadRegistry_Missing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities": [`), 0o600))

	_, err := LoadRegistry(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	reg, err := LoadRegistry("../../configs/activity-registry.json")
	require.NoError(t, err)
	assert.NoError(t, reg.Validate())

	valid := Activity{ID: "a", TaskType: "a", DisplayName: "A", Category: "matching"}

	tests := []struct {
		name       string
		activities []Activity
		want       string
	}{
		{"empty", nil, "no activities"},
		{"missing id", []Activity{{TaskType: "a"}}, "ID"},
		{"duplicate id", []Activity{valid, valid}, "duplicate activity ID"},
		{"duplicate task type", []Activity{valid, {ID: "b", TaskType: "a", DisplayName: "B", Category: "matching"}}, "duplicate task type"},
		{"missing category", []Activity{{ID: "a", TaskType: "a", DisplayName: "A"}}, "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ActivityRegistry{Activities: tt.activities}).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
