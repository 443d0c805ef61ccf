// internal/feedback/store.go
package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteer-matching/internal/matching"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidFeedback = errors.New("INVALID_INPUT")
	ErrInsertFailed    = errors.New("FEEDBACK_INSERT_FAILED")
)

// Feedback is one volunteer's rating of an opportunity they were matched with.
type Feedback struct {
	ID            string    `json:"id"`
	VolunteerID   string    `json:"volunteerId"`
	OpportunityID string    `json:"opportunityId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	Sentiment     float64   `json:"sentiment"`
	Topics        []string  `json:"topics"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Record analyzes the comment, assigns an id and inserts the row into
// match_feedback.
func (s *Store) Record(ctx context.Context, volunteerID, opportunityID string, rating int, comment string) (*Feedback, error) {
	if strings.TrimSpace(volunteerID) == "" || strings.TrimSpace(opportunityID) == "" {
		return nil, fmt.Errorf("%w: volunteer and opportunity ids are required", ErrInvalidFeedback)
	}
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: rating %d outside %d..%d", ErrInvalidFeedback, rating, MinRating, MaxRating)
	}

	analysis := matching.AnalyzeComment(comment)
	fb := &Feedback{
		ID:            uuid.NewString(),
		VolunteerID:   volunteerID,
		OpportunityID: opportunityID,
		Rating:        rating,
		Comment:       comment,
		Sentiment:     analysis.Sentiment,
		Topics:        analysis.Topics,
		CreatedAt:     s.now().UTC(),
	}

	topics, err := json.Marshal(fb.Topics)
	if err != nil {
		return nil, fmt.Errorf("%w: encode topics: %v", ErrInsertFailed, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_feedback
			(id, volunteer_id, opportunity_id, rating, comment, sentiment, topics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fb.ID, fb.VolunteerID, fb.OpportunityID, fb.Rating, fb.Comment, fb.Sentiment, topics, fb.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	return fb, nil
}

// Ratings returns the latest rating the volunteer gave each opportunity.
func (s *Store) Ratings(ctx context.Context, volunteerID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT ON (opportunity_id) opportunity_id, rating
		FROM match_feedback
		WHERE volunteer_id = $1
		ORDER BY opportunity_id, created_at DESC`, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("load ratings for %s: %w", volunteerID, err)
	}
	defer rows.Close()

	ratings := make(map[string]int)
	for rows.Next() {
		var oppID string
		var rating int
		if err := rows.Scan(&oppID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings[oppID] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}
