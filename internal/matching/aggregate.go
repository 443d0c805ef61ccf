// internal/matching/aggregate.go
package matching

import (
	"fmt"
	"math"
	"sort"
)

// Category weights of the overall score.
const (
	SkillsWeight       = 0.40
	InterestsWeight    = 0.30
	AvailabilityWeight = 0.15
	LocationWeight     = 0.15
)

// Aggregate scores one opportunity for one profile.
func Aggregate(profile *Profile, opp *Opportunity) (Match, error) {
	if profile == nil {
		return Match{}, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	if opp == nil {
		return Match{}, fmt.Errorf("%w: opportunity is required", ErrInvalidInput)
	}

	skills := ScoreSkills(profile.Skills, opp.RequiredSkillList(), opp.RecommendedSkills)
	interests := ScoreInterests(profile.Interests, opp.Interests)
	availability := ScoreAvailability(profile.Availability, opp.TimeRequirements)
	location := ScoreLocation(profile.PreferredLocation(), opp.Location)

	total := skills.Score*SkillsWeight +
		interests.Score*InterestsWeight +
		availability*AvailabilityWeight +
		location*LocationWeight

	return Match{
		OpportunityID:     opp.ID,
		Score:             toScore(total),
		MatchedSkills:     skills.MatchedSkills,
		MissingSkills:     skills.MissingSkills,
		MatchingInterests: interests.MatchingInterests,
		Details: MatchDetails{
			SkillScore:        toScore(skills.Score),
			InterestScore:     toScore(interests.Score),
			AvailabilityScore: toScore(availability),
			LocationScore:     toScore(location),
		},
		Opportunity: opp,
	}, nil
}

// Rank scores every opportunity and sorts the result by score, descending.
// Ties keep catalog order.
func Rank(profile *Profile, opportunities []Opportunity) ([]Match, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}

	matches := make([]Match, 0, len(opportunities))
	for i := range opportunities {
		m, err := Aggregate(profile, &opportunities[i])
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	sortMatches(matches)
	return matches, nil
}

// RankVolunteers scores each profile against one opportunity, drops those
// below minScore and sorts the rest by score, descending.
func RankVolunteers(opp *Opportunity, profiles []Profile, minScore int) ([]VolunteerMatch, error) {
	if opp == nil {
		return nil, fmt.Errorf("%w: opportunity is required", ErrInvalidInput)
	}

	out := make([]VolunteerMatch, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		m, err := Aggregate(p, opp)
		if err != nil {
			return nil, err
		}
		if m.Score < minScore {
			continue
		}
		out = append(out, VolunteerMatch{
			VolunteerID:       p.ID,
			Name:              p.Name,
			Score:             m.Score,
			MatchedSkills:     m.MatchedSkills,
			MissingSkills:     m.MissingSkills,
			MatchingInterests: m.MatchingInterests,
			Details:           m.Details,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func toScore(v float64) int {
	return int(math.Round(clamp(v)))
}
