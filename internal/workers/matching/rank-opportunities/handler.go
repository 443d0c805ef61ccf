// internal/workers/matching/rank-opportunities/handler.go
package rankopportunities

import (
	"context"
	"encoding/json"
	"fmt"

	"volunteer-matching/internal/catalog"
	"volunteer-matching/internal/common/camunda"
	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/metrics"
	"volunteer-matching/internal/common/observability"
	"volunteer-matching/internal/common/validation"
	"volunteer-matching/internal/matching"
	"volunteer-matching/internal/workers/matching/resolve"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	TaskType = "rank-opportunities"
)

// RatingSource is satisfied by *feedback.Store.
type RatingSource interface {
	Ratings(ctx context.Context, volunteerID string) (map[string]int, error)
}

type Dependencies struct {
	Profiles      resolve.ProfileGetter
	Catalog       catalog.Catalog
	Ratings       RatingSource
	Validator     *validation.SchemaValidator
	Observability *observability.Observability
}

type Handler struct {
	config       *Config
	deps         Dependencies
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		deps:         deps,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, TaskType, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if err := h.deps.Validator.Check(TaskType, job.Variables); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err), err)
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var (
		profile *matching.Profile
		opps    []matching.Opportunity
		ratings map[string]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = resolve.Profile(gctx, h.deps.Profiles, input.UserID, input.Profile)
		return err
	})
	g.Go(func() error {
		var err error
		opps, err = resolve.Catalog(gctx, h.deps.Catalog)
		return err
	})
	if input.ApplyFeedback && input.UserID != "" && h.deps.Ratings != nil {
		g.Go(func() error {
			r, err := h.deps.Ratings.Ratings(gctx, input.UserID)
			if err != nil {
				// feedback is optional
				h.logger.Warn("failed to load feedback ratings", map[string]interface{}{
					"userId": input.UserID,
					"error":  err,
				})
				return nil
			}
			ratings = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked, err := matching.Rank(profile, opps)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}

	adjustment := 0
	if len(ratings) > 0 {
		ranked = matching.ApplyFeedback(ranked, ratings)
		adjustment = matching.FeedbackAdjustment(ratings)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.TopMatches
	}
	top := matching.TopMatches(ranked, limit)

	ids := make([]string, 0, len(top))
	for _, m := range top {
		ids = append(ids, m.OpportunityID)
	}
	for _, m := range ranked {
		metrics.MatchScores.WithLabelValues(TaskType).Observe(float64(m.Score))
	}
	h.deps.Observability.RecordMatches(ctx, TaskType, len(ranked))

	requestID := uuid.NewString()
	h.logger.Info("opportunities ranked", map[string]interface{}{
		"requestId":          requestID,
		"userId":             profile.ID,
		"catalogSource":      h.deps.Catalog.Source(),
		"totalScored":        len(ranked),
		"returned":           len(top),
		"feedbackAdjustment": adjustment,
	})

	return &Output{
		RequestID:          requestID,
		Matches:            top,
		MatchIDs:           ids,
		RankedMatches:      ranked,
		TotalScored:        len(ranked),
		FeedbackAdjustment: adjustment,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
