// internal/matching/selector_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedFixture() []Match {
	mk := func(id string, score int, interests ...string) Match {
		return Match{
			OpportunityID: id,
			Score:         score,
			Opportunity:   &Opportunity{ID: id, Interests: interests},
		}
	}
	return []Match{
		mk("a", 92, "Teknologji", "Edukim"),
		mk("b", 85, "Teknologji"),
		mk("c", 78, "Teknologji", "Edukim"),
		mk("d", 70, "Sport"),
		mk("e", 62, "Teknologji", "Edukim"),
		mk("f", 55, "Art"),
		mk("g", 45, "Sport"),
		mk("h", 42, "Teknologji", "Arsim"),
		mk("i", 30, "Sport"),
	}
}

func ids(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.OpportunityID)
	}
	return out
}

func TestTopMatches(t *testing.T) {
	ranked := rankedFixture()

	assert.Equal(t, []string{"a", "b"}, ids(TopMatches(ranked, 2)))
	assert.Len(t, TopMatches(ranked, 0), DefaultTopMatches)
	assert.Len(t, TopMatches(ranked, 50), len(ranked))
	assert.Empty(t, TopMatches(nil, 3))
}

func TestRecommend(t *testing.T) {
	profile := &Profile{Interests: []string{"Teknologji", "Edukim"}}
	ranked := rankedFixture()
	top := TopMatches(ranked, 2)

	tests := []struct {
		name  string
		count int
		want  []string
	}{
		{"band interleaved with diverse", 4, []string{"c", "g", "d", "e"}},
		{"default count", 0, []string{"c", "g", "d", "e"}},
		{"backfill stops at floor", 10, []string{"c", "g", "d", "e", "f", "h"}},
		{"single", 1, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Recommend(profile, ranked, RecommendOptions{Count: tt.count, TopN: len(top)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRecommend_FloorAndNoDuplicates(t *testing.T) {
	profile := &Profile{Interests: []string{"Sport"}}
	ranked := rankedFixture()
	top := TopMatches(ranked, 3)

	got, err := Recommend(profile, ranked, RecommendOptions{Count: 20, TopN: len(top)})
	require.NoError(t, err)

	topIDs := map[string]bool{}
	for _, m := range top {
		topIDs[m.OpportunityID] = true
	}
	seen := map[string]bool{}
	for _, m := range got {
		assert.GreaterOrEqual(t, m.Score, RecommendationFloor)
		assert.False(t, topIDs[m.OpportunityID], "top match %s recommended", m.OpportunityID)
		assert.False(t, seen[m.OpportunityID], "duplicate %s", m.OpportunityID)
		seen[m.OpportunityID] = true
	}
}

func TestRecommend_ShortWhenEverythingIsWeak(t *testing.T) {
	ranked := []Match{
		{OpportunityID: "x", Score: 39},
		{OpportunityID: "y", Score: 10},
	}

	got, err := Recommend(&Profile{}, ranked, RecommendOptions{Count: 3})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommend_NilProfile(t *testing.T) {
	_, err := Recommend(nil, rankedFixture(), RecommendOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_FromRankedCatalog(t *testing.T) {
	ranked, err := Rank(scenarioProfile(), testCatalog())
	require.NoError(t, err)

	top := TopMatches(ranked, 1)
	recs, err := Recommend(scenarioProfile(), ranked, RecommendOptions{Count: 3, TopN: 1})
	require.NoError(t, err)

	for _, r := range recs {
		assert.NotEqual(t, top[0].OpportunityID, r.OpportunityID)
		assert.GreaterOrEqual(t, r.Score, RecommendationFloor)
	}
}

func TestRecommend_NeverRepeatsTopMatches(t *testing.T) {
	ranked := []Match{
		{OpportunityID: "top", Score: 78},
		{OpportunityID: "x", Score: 70},
	}
	top := TopMatches(ranked, 1)

	got, err := Recommend(&Profile{}, ranked, RecommendOptions{Count: 3, TopN: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(got))
	for _, m := range top {
		assert.NotContains(t, ids(got), m.OpportunityID)
	}
}

func TestRecommend_DefaultTopN(t *testing.T) {
	profile := &Profile{Interests: []string{"Teknologji", "Edukim"}}
	ranked := rankedFixture()
	top := ids(TopMatches(ranked, DefaultTopMatches))

	got, err := Recommend(profile, ranked, RecommendOptions{Count: 10})
	require.NoError(t, err)
	// only g and h are left after the default top six; i is below the floor
	assert.Equal(t, []string{"g", "h"}, ids(got))
	for _, id := range ids(got) {
		assert.NotContains(t, top, id)
	}
}

func TestRecommend_ExcludeIDsOnTopOfTopN(t *testing.T) {
	profile := &Profile{Interests: []string{"Teknologji", "Edukim"}}

	got, err := Recommend(profile, rankedFixture(), RecommendOptions{Count: 10, TopN: 2, ExcludeIDs: []string{"c", "d"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "g", "f", "h"}, ids(got))
}
