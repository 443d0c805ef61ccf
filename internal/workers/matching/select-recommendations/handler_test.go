// internal/workers/matching/select-recommendations/handler_test.go
package selectrecommendations

import (
	"context"
	"errors"
	"testing"

	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func ranked(scores ...int) []matching.Match {
	out := make([]matching.Match, 0, len(scores))
	for i, s := range scores {
		out = append(out, matching.Match{
			OpportunityID: string(rune('a' + i)),
			Score:         s,
		})
	}
	return out
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))
}

// ==========================
// Tests
// ==========================

func TestExecute_RespectsFloorAndExclusions(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Profile:       &matching.Profile{},
		RankedMatches: ranked(92, 85, 74, 66, 58, 41, 39, 12),
		TopMatches:    1,
		ExcludeIDs:    []string{"b"},
	})
	require.NoError(t, err)

	require.NotEmpty(t, out.Recommendations)
	assert.LessOrEqual(t, len(out.Recommendations), matching.DefaultRecommendations)
	assert.Len(t, out.RecommendationIDs, len(out.Recommendations))

	for _, m := range out.Recommendations {
		assert.GreaterOrEqual(t, m.Score, matching.RecommendationFloor)
		assert.NotContains(t, []string{"a", "b"}, m.OpportunityID)
	}
}

func TestExecute_CountOverride(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Profile:       &matching.Profile{},
		RankedMatches: ranked(79, 75, 70, 65, 60, 55),
		TopMatches:    1,
		Count:         2,
	})
	require.NoError(t, err)
	assert.Len(t, out.Recommendations, 2)
}

func TestExecute_LeavesOutTopMatchesByDefault(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Profile:       &matching.Profile{},
		RankedMatches: ranked(95, 90, 85, 80, 75, 70, 65, 60),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "h"}, out.RecommendationIDs)
}

func TestExecute_TopMatchesFromConfig(t *testing.T) {
	cfg := LoadConfig()
	cfg.TopMatches = 2
	h := NewHandler(cfg, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		Profile:       &matching.Profile{},
		RankedMatches: ranked(95, 90, 85, 80, 75),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "c", "d"}, out.RecommendationIDs)
}

func TestExecute_EmptyList(t *testing.T) {
	out, err := createTestHandler(t).Execute(context.Background(), &Input{Profile: &matching.Profile{}})
	require.NoError(t, err)
	assert.Empty(t, out.Recommendations)
	assert.NotNil(t, out.RecommendationIDs)
}

func TestExecute_MissingProfile(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), &Input{RankedMatches: ranked(70)})

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
	assert.True(t, errors.Is(err, matching.ErrInvalidInput))
}

func TestParseInput(t *testing.T) {
	h := createTestHandler(t)

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Type:      TaskType,
		Variables: `{"profile":{"city":"Tiranë"},"rankedMatches":[{"opportunityId":"x","score":60}],"topMatches":3,"excludeIds":["y"]}`,
	}}
	input, err := h.parseInput(job)
	require.NoError(t, err)
	assert.Equal(t, "Tiranë", input.Profile.City)
	require.Len(t, input.RankedMatches, 1)
	assert.Equal(t, 60, input.RankedMatches[0].Score)
	assert.Equal(t, 3, input.TopMatches)
	assert.Equal(t, []string{"y"}, input.ExcludeIDs)
}
