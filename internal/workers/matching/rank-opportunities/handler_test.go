// internal/workers/matching/rank-opportunities/handler_test.go
package rankopportunities

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"volunteer-matching/internal/catalog"
	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/matching"
	"volunteer-matching/internal/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type stubProfiles map[string]*matching.Profile

func (s stubProfiles) Get(_ context.Context, id string) (*matching.Profile, error) {
	if p, ok := s[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, id)
}

type MockRatings struct {
	mock.Mock
}

func (m *MockRatings) Ratings(ctx context.Context, volunteerID string) (map[string]int, error) {
	args := m.Called(ctx, volunteerID)
	r, _ := args.Get(0).(map[string]int)
	return r, args.Error(1)
}

type failingCatalog struct{}

func (failingCatalog) List(context.Context) ([]matching.Opportunity, error) {
	return nil, errors.New("connection refused")
}

func (failingCatalog) Get(context.Context, string) (*matching.Opportunity, error) {
	return nil, errors.New("connection refused")
}

func (failingCatalog) Source() string { return "postgres" }

// ==========================
// Test Helper Functions
// ==========================

func volunteer() *matching.Profile {
	return &matching.Profile{
		ID:           "u-1",
		Skills:       []string{"Komunikim", "Mentorim", "Punë në grup"},
		Interests:    []string{"Edukim", "Mjedis"},
		Availability: &matching.Availability{Weekends: true, Evenings: true},
		City:         "Tiranë",
	}
}

func createTestHandler(t *testing.T, ratings RatingSource) *Handler {
	t.Helper()
	return NewHandler(LoadConfig(), Dependencies{
		Profiles: stubProfiles{"u-1": volunteer()},
		Catalog:  catalog.NewStatic(catalog.DefaultOpportunities()),
		Ratings:  ratings,
	}, logger.NewTestLogger(t))
}

func scoresByID(matches []matching.Match) map[string]int {
	out := make(map[string]int, len(matches))
	for _, m := range matches {
		out[m.OpportunityID] = m.Score
	}
	return out
}

// ==========================
// Tests
// ==========================

func TestExecute_RanksWholeCatalog(t *testing.T) {
	h := createTestHandler(t, nil)

	out, err := h.Execute(context.Background(), &Input{UserID: "u-1"})
	require.NoError(t, err)

	total := len(catalog.DefaultOpportunities())
	assert.Equal(t, total, out.TotalScored)
	assert.Len(t, out.RankedMatches, total)
	require.Len(t, out.Matches, matching.DefaultTopMatches)
	assert.True(t, sort.SliceIsSorted(out.RankedMatches, func(i, j int) bool {
		return out.RankedMatches[i].Score > out.RankedMatches[j].Score
	}))

	for i, m := range out.Matches {
		assert.Equal(t, out.RankedMatches[i].OpportunityID, m.OpportunityID)
		assert.Equal(t, m.OpportunityID, out.MatchIDs[i])
		require.NotNil(t, m.Opportunity)
	}

	_, err = uuid.Parse(out.RequestID)
	assert.NoError(t, err)
	assert.Zero(t, out.FeedbackAdjustment)
}

func TestExecute_Limit(t *testing.T) {
	h := createTestHandler(t, nil)

	out, err := h.Execute(context.Background(), &Input{Profile: volunteer(), Limit: 3})
	require.NoError(t, err)
	assert.Len(t, out.Matches, 3)
	assert.Len(t, out.MatchIDs, 3)
}

func TestExecute_ApplyFeedback(t *testing.T) {
	ratings := new(MockRatings)
	ratings.On("Ratings", mock.Anything, "u-1").
		Return(map[string]int{"opp-park-cleanup": 5, "opp-mural": 4, "opp-food-bank": 3}, nil)

	plain, err := createTestHandler(t, nil).Execute(context.Background(), &Input{UserID: "u-1"})
	require.NoError(t, err)

	h := createTestHandler(t, ratings)
	out, err := h.Execute(context.Background(), &Input{UserID: "u-1", ApplyFeedback: true})
	require.NoError(t, err)

	assert.Equal(t, 4, out.FeedbackAdjustment)
	before := scoresByID(plain.RankedMatches)
	for _, m := range out.RankedMatches {
		assert.Equal(t, before[m.OpportunityID], m.OriginalScore)
		want := before[m.OpportunityID] + 4
		if want > 100 {
			want = 100
		}
		assert.Equal(t, want, m.Score)
	}
	ratings.AssertExpectations(t)
}

func TestExecute_FeedbackFailureIsNotFatal(t *testing.T) {
	ratings := new(MockRatings)
	ratings.On("Ratings", mock.Anything, "u-1").Return(nil, errors.New("db down"))

	out, err := createTestHandler(t, ratings).Execute(context.Background(), &Input{UserID: "u-1", ApplyFeedback: true})
	require.NoError(t, err)
	assert.Zero(t, out.FeedbackAdjustment)
	ratings.AssertExpectations(t)
}

func TestExecute_InlineProfileSkipsFeedback(t *testing.T) {
	ratings := new(MockRatings)

	_, err := createTestHandler(t, ratings).Execute(context.Background(), &Input{Profile: volunteer(), ApplyFeedback: true})
	require.NoError(t, err)
	ratings.AssertNotCalled(t, "Ratings", mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	var stdErr *apperrors.StandardError

	_, err := createTestHandler(t, nil).Execute(context.Background(), &Input{UserID: "ghost"})
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeProfileNotFound, stdErr.Code)

	h := NewHandler(LoadConfig(), Dependencies{
		Profiles: stubProfiles{"u-1": volunteer()},
		Catalog:  failingCatalog{},
	}, logger.NewTestLogger(t))
	_, err = h.Execute(context.Background(), &Input{UserID: "u-1"})
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeCatalogUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
