// internal/workers/matching/record-match-feedback/models.go
package recordmatchfeedback

type Input struct {
	UserID        string `json:"userId"`
	OpportunityID string `json:"opportunityId"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
}

type Output struct {
	FeedbackID string   `json:"feedbackId"`
	Sentiment  float64  `json:"sentiment"`
	Topics     []string `json:"topics"`
	RecordedAt string   `json:"recordedAt"`
}
