// internal/workers/matching/rank-opportunities/models.go
package rankopportunities

import "volunteer-matching/internal/matching"

type Input struct {
	UserID        string            `json:"userId"`
	Profile       *matching.Profile `json:"profile,omitempty"`
	Limit         int               `json:"limit,omitempty"`
	ApplyFeedback bool              `json:"applyFeedback,omitempty"`
}

// Output carries the top matches plus the full ranked list, which the
// select-recommendations task consumes.
type Output struct {
	RequestID          string           `json:"requestId"`
	Matches            []matching.Match `json:"matches"`
	MatchIDs           []string         `json:"matchIds"`
	RankedMatches      []matching.Match `json:"rankedMatches"`
	TotalScored        int              `json:"totalScored"`
	FeedbackAdjustment int              `json:"feedbackAdjustment"`
}
