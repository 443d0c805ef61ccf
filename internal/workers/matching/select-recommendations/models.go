// internal/workers/matching/select-recommendations/models.go
package selectrecommendations

import "volunteer-matching/internal/matching"

type Input struct {
	Profile       *matching.Profile `json:"profile"`
	RankedMatches []matching.Match  `json:"rankedMatches"`
	TopMatches    int               `json:"topMatches,omitempty"`
	ExcludeIDs    []string          `json:"excludeIds,omitempty"`
	Count         int               `json:"count,omitempty"`
}

type Output struct {
	Recommendations   []matching.Match `json:"recommendations"`
	RecommendationIDs []string         `json:"recommendationIds"`
}
