// internal/matching/interests.go
package matching

const (
	noUserInterestsScore        = 30.0
	noOpportunityInterestsScore = 50.0
	semanticMatchWeight         = 0.75
)

// ScoreInterests returns a weighted Jaccard similarity between the volunteer's
// interests and the opportunity's interest tags. Semantic matches count 0.75.
func ScoreInterests(userInterests, oppInterests []string) InterestsResult {
	user := normalizeAll(userInterests)
	if len(user) == 0 {
		return InterestsResult{Score: noUserInterestsScore, MatchingInterests: []string{}}
	}
	oppOriginal := compact(oppInterests)
	if len(oppOriginal) == 0 {
		return InterestsResult{Score: noOpportunityInterestsScore, MatchingInterests: []string{}}
	}

	oppIndex := make(map[string]string, len(oppOriginal))
	opp := make([]string, 0, len(oppOriginal))
	for _, o := range oppOriginal {
		n := normalize(o)
		if _, ok := oppIndex[n]; !ok {
			oppIndex[n] = o
			opp = append(opp, n)
		}
	}

	union := make(map[string]struct{}, len(user)+len(opp))
	for _, u := range user {
		union[u] = struct{}{}
	}
	for _, o := range opp {
		union[o] = struct{}{}
	}

	matching := newEvidence()
	var exact, semantic int
	counted := make(map[string]struct{}, len(user))
	for _, u := range user {
		if _, dup := counted[u]; dup {
			continue
		}
		counted[u] = struct{}{}

		if orig, ok := oppIndex[u]; ok {
			exact++
			matching.add(orig)
			continue
		}
		for _, o := range opp {
			if AreInterestsRelated(u, o) {
				semantic++
				matching.add(oppIndex[o])
				break
			}
		}
	}

	score := (float64(exact) + semanticMatchWeight*float64(semantic)) / float64(len(union)) * 100
	return InterestsResult{
		Score:             clamp(score),
		MatchingInterests: matching.list(),
	}
}
