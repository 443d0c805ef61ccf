// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

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
)

const (
	TaskType = "calculate-match-score"
)

type Dependencies struct {
	Profiles      resolve.ProfileGetter
	Catalog       catalog.Catalog
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
	profile, err := resolve.Profile(ctx, h.deps.Profiles, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}
	opp, err := resolve.Opportunity(ctx, h.deps.Catalog, input.OpportunityID, input.Opportunity)
	if err != nil {
		return nil, err
	}

	match, err := matching.Aggregate(profile, opp)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}

	metrics.MatchScores.WithLabelValues(TaskType).Observe(float64(match.Score))
	h.deps.Observability.RecordMatches(ctx, TaskType, 1)

	h.logger.Info("match score calculated", map[string]interface{}{
		"userId":        profile.ID,
		"opportunityId": match.OpportunityID,
		"score":         match.Score,
		"details":       match.Details,
	})

	return &Output{Match: match}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
