// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "volunteer-matching/internal/matching"

type Input struct {
	UserID        string                `json:"userId"`
	Profile       *matching.Profile     `json:"profile,omitempty"`
	OpportunityID string                `json:"opportunityId"`
	Opportunity   *matching.Opportunity `json:"opportunity,omitempty"`
}

type Output struct {
	Match matching.Match `json:"match"`
}
