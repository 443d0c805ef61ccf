// internal/workers/matching/find-volunteers/models.go
package findvolunteers

import "volunteer-matching/internal/matching"

type Input struct {
	OpportunityID string                `json:"opportunityId"`
	Opportunity   *matching.Opportunity `json:"opportunity,omitempty"`
	Limit         int                   `json:"limit,omitempty"`
	MinScore      *int                  `json:"minScore,omitempty"`
}

type Output struct {
	OpportunityID   string                    `json:"opportunityId"`
	Volunteers      []matching.VolunteerMatch `json:"volunteers"`
	TotalCandidates int                       `json:"totalCandidates"`
}
