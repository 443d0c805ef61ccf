// internal/matching/selector.go
package matching

import "fmt"

const (
	DefaultTopMatches      = 6
	DefaultRecommendations = 4

	// RecommendationFloor is the lowest score a recommendation may carry.
	RecommendationFloor = 40

	bandLow           = 50
	bandHigh          = 80
	primaryInterests  = 2
	maxPrimaryOverlap = 1
)

// RecommendOptions controls Recommend. TopN is the size of the top-match list
// the recommendations must not repeat; ExcludeIDs adds further exclusions.
type RecommendOptions struct {
	Count      int
	TopN       int
	ExcludeIDs []string
}

// TopMatches returns the first n ranked matches.
func TopMatches(ranked []Match, n int) []Match {
	if n <= 0 {
		n = DefaultTopMatches
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]Match, n)
	copy(out, ranked[:n])
	return out
}

// Recommend picks exploration candidates from a ranked list. The first TopN
// ranked matches and any ExcludeIDs never appear; mid-band scores [50,80) are preferred and interleaved with
// matches that share at most one of the volunteer's two primary interests;
// the rest is backfilled by rank. Nothing below RecommendationFloor is
// returned, even if that leaves the list short.
func Recommend(profile *Profile, ranked []Match, opts RecommendOptions) ([]Match, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	count := opts.Count
	if count <= 0 {
		count = DefaultRecommendations
	}

	top := TopMatches(ranked, opts.TopN)
	excluded := make(map[string]struct{}, len(top)+len(opts.ExcludeIDs))
	for _, m := range top {
		excluded[m.OpportunityID] = struct{}{}
	}
	for _, id := range opts.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	candidates := make([]Match, 0, len(ranked))
	for _, m := range ranked {
		if _, skip := excluded[m.OpportunityID]; skip {
			continue
		}
		if m.Score < RecommendationFloor {
			continue
		}
		candidates = append(candidates, m)
	}

	var band, diverse []int
	for i, m := range candidates {
		if m.Score >= bandLow && m.Score < bandHigh {
			band = append(band, i)
		} else if primaryOverlap(profile, m) <= maxPrimaryOverlap {
			diverse = append(diverse, i)
		}
	}

	picked := make(map[int]struct{}, count)
	out := make([]Match, 0, count)
	take := func(i int) {
		if len(out) >= count {
			return
		}
		if _, ok := picked[i]; ok {
			return
		}
		if _, ok := excluded[candidates[i].OpportunityID]; ok {
			return
		}
		picked[i] = struct{}{}
		excluded[candidates[i].OpportunityID] = struct{}{}
		out = append(out, candidates[i])
	}

	for i := 0; i < len(band) || i < len(diverse); i++ {
		if i < len(band) {
			take(band[i])
		}
		if i < len(diverse) {
			take(diverse[i])
		}
	}
	for i := range candidates {
		take(i)
	}
	return out, nil
}

// primaryOverlap counts how many of the profile's first two interests the
// opportunity shares, exactly or through a related tag.
func primaryOverlap(profile *Profile, m Match) int {
	if m.Opportunity == nil {
		return len(m.MatchingInterests)
	}
	primary := normalizeAll(profile.Interests)
	if len(primary) > primaryInterests {
		primary = primary[:primaryInterests]
	}

	var n int
	for _, p := range primary {
		for _, o := range m.Opportunity.Interests {
			if AreInterestsRelated(p, o) {
				n++
				break
			}
		}
	}
	return n
}
