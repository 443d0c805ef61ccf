// internal/workers/matching/find-volunteers/handler.go
package findvolunteers

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
	TaskType = "find-volunteers"
)

// VolunteerLister is satisfied by *profile.Store.
type VolunteerLister interface {
	List(ctx context.Context) ([]matching.Profile, error)
}

type Dependencies struct {
	Volunteers    VolunteerLister
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
	opp, err := resolve.Opportunity(ctx, h.deps.Catalog, input.OpportunityID, input.Opportunity)
	if err != nil {
		return nil, err
	}

	profiles, err := h.deps.Volunteers.List(ctx)
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError("*", err)
	}

	minScore := h.config.MinScore
	if input.MinScore != nil {
		minScore = *input.MinScore
	}

	ranked, err := matching.RankVolunteers(opp, profiles, minScore)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.Limit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for _, v := range ranked {
		metrics.MatchScores.WithLabelValues(TaskType).Observe(float64(v.Score))
	}
	h.deps.Observability.RecordMatches(ctx, TaskType, len(profiles))

	h.logger.Info("volunteers ranked", map[string]interface{}{
		"opportunityId": opp.ID,
		"candidates":    len(profiles),
		"returned":      len(ranked),
		"minScore":      minScore,
	})

	return &Output{
		OpportunityID:   opp.ID,
		Volunteers:      ranked,
		TotalCandidates: len(profiles),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
