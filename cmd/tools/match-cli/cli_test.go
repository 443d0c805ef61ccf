// cmd/tools/match-cli/cli_test.go
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"volunteer-matching/internal/catalog"
	"volunteer-matching/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const anaProfile = `
id: v-ana
name: Ana
skills: [Programim, Komunikim]
interests: [Teknologji, Edukim]
availability:
  weekdays: true
  afternoons: true
city: Tiranë
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeMatches(t *testing.T, out string) []matching.Match {
	t.Helper()
	var matches []matching.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	return matches
}

// ==========================
// Tests
// ==========================

func TestRank_JSON(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)

	out, err := run(t, "rank", "--profile", profile, "-o", "json")
	require.NoError(t, err)

	matches := decodeMatches(t, out)
	require.Len(t, matches, matching.DefaultTopMatches)
	assert.Equal(t, "opp-digital-literacy", matches[0].OpportunityID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestRank_AllAndTable(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)

	out, err := run(t, "rank", "--profile", profile, "--all", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeMatches(t, out), len(catalogIDs()))

	out, err = run(t, "rank", "--profile", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "opp-digital-literacy")
}

func TestRank_FileCatalog(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)
	cat := writeFile(t, "catalog.yaml", `
opportunities:
  - id: opp-a
    title: A
    location: Tiranë
  - id: opp-b
    title: B
    location: Korçë
`)

	out, err := run(t, "rank", "--profile", profile, "--catalog", cat, "-o", "json")
	require.NoError(t, err)

	matches := decodeMatches(t, out)
	require.Len(t, matches, 2)
	assert.Equal(t, "opp-a", matches[0].OpportunityID)
}

func TestRecommend_Excludes(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)

	out, err := run(t, "recommend", "--profile", profile, "--exclude", "opp-digital-literacy,opp-online-mentoring", "-o", "json")
	require.NoError(t, err)

	recs := decodeMatches(t, out)
	assert.LessOrEqual(t, len(recs), matching.DefaultRecommendations)
	for _, r := range recs {
		assert.NotEqual(t, "opp-digital-literacy", r.OpportunityID)
		assert.NotEqual(t, "opp-online-mentoring", r.OpportunityID)
		assert.GreaterOrEqual(t, r.Score, matching.RecommendationFloor)
	}
}

func TestRecommend_SkipsTopMatches(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)

	out, err := run(t, "recommend", "--profile", profile, "--top", "1", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"opp-online-mentoring"}, matchIDs(decodeMatches(t, out)))

	out, err = run(t, "recommend", "--profile", profile, "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, decodeMatches(t, out))
}

func matchIDs(matches []matching.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.OpportunityID)
	}
	return out
}

func TestScore(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)

	out, err := run(t, "score", "--profile", profile, "--opportunity", "opp-digital-literacy", "-o", "json")
	require.NoError(t, err)

	var m matching.Match
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "opp-digital-literacy", m.OpportunityID)
	assert.Equal(t, 100, m.Details.LocationScore)
	assert.Contains(t, m.MatchedSkills, "Programim")
}

func TestScore_Errors(t *testing.T) {
	profile := writeFile(t, "ana.yaml", anaProfile)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown opportunity", []string{"score", "--profile", profile, "--opportunity", "opp-missing"}, "OPPORTUNITY_NOT_FOUND"},
		{"missing profile flag", []string{"score", "--opportunity", "opp-mural"}, "--profile is required"},
		{"unreadable profile", []string{"score", "--profile", "/nonexistent.yaml", "--opportunity", "opp-mural"}, "read profile"},
		{"bad output format", []string{"score", "--profile", profile, "--opportunity", "opp-mural", "-o", "xml"}, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestActivities(t *testing.T) {
	out, err := run(t, "activities", "--registry", "../../../configs/activity-registry.json")
	require.NoError(t, err)
	assert.Contains(t, out, "notify-recommendations")
	assert.Contains(t, out, "calculate-match-score")
}

func catalogIDs() []string {
	var ids []string
	for _, o := range catalog.DefaultOpportunities() {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestActivities_Check(t *testing.T) {
	out, err := run(t, "activities", "--check", "--registry", "../../../configs/activity-registry.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Registry validation passed. Found 6 activities.")

	bad := writeFile(t, "registry.json", `{"activities": [{"id": "x", "taskType": "x"}]}`)
	_, err = run(t, "activities", "--check", "--registry", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DisplayName")
}
