// internal/workers/matching/notify-recommendations/models.go
package notifyrecommendations

import "volunteer-matching/internal/matching"

const (
	StatusSent     = "sent"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)

type Input struct {
	Email           string           `json:"email,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Name            string           `json:"name,omitempty"`
	Recommendations []matching.Match `json:"recommendations"`
}

type Output struct {
	EmailSent bool   `json:"emailSent"`
	SMSSent   bool   `json:"smsSent"`
	MessageID string `json:"messageId,omitempty"`
	Status    string `json:"status"`
}

// item is one line of a notification.
type item struct {
	Title        string
	Organization string
	Location     string
	Score        int
}
