// internal/workers/matching/select-recommendations/handler.go
package selectrecommendations

import (
	"context"
	"encoding/json"
	"fmt"

	"volunteer-matching/internal/common/camunda"
	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/validation"
	"volunteer-matching/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "select-recommendations"
)

type Handler struct {
	config       *Config
	validator    *validation.SchemaValidator
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		validator:    validator,
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
	if err := h.validator.Check(TaskType, job.Variables); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err), err)
	}
	return &input, nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	count := input.Count
	if count <= 0 {
		count = h.config.Recommendations
	}
	topN := input.TopMatches
	if topN <= 0 {
		topN = h.config.TopMatches
	}

	recs, err := matching.Recommend(input.Profile, input.RankedMatches, matching.RecommendOptions{
		Count:      count,
		TopN:       topN,
		ExcludeIDs: input.ExcludeIDs,
	})
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}

	ids := make([]string, 0, len(recs))
	for _, m := range recs {
		ids = append(ids, m.OpportunityID)
	}

	h.logger.Info("recommendations selected", map[string]interface{}{
		"candidates": len(input.RankedMatches),
		"topMatches": topN,
		"excluded":   len(input.ExcludeIDs),
		"selected":   len(recs),
		"requested":  count,
	})

	return &Output{Recommendations: recs, RecommendationIDs: ids}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
