// internal/workers/matching/record-match-feedback/handler.go
package recordmatchfeedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"volunteer-matching/internal/common/camunda"
	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/validation"
	"volunteer-matching/internal/feedback"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-match-feedback"
)

// Recorder is satisfied by *feedback.Store.
type Recorder interface {
	Record(ctx context.Context, volunteerID, opportunityID string, rating int, comment string) (*feedback.Feedback, error)
}

type Handler struct {
	config       *Config
	store        Recorder
	validator    *validation.SchemaValidator
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store Recorder, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	fb, err := h.store.Record(ctx, input.UserID, input.OpportunityID, input.Rating, input.Comment)
	if errors.Is(err, feedback.ErrInvalidFeedback) {
		return nil, apperrors.NewInvalidInputError(err.Error(), err)
	}
	if err != nil {
		return nil, apperrors.NewFeedbackInsertFailedError(err)
	}

	h.logger.Info("match feedback recorded", map[string]interface{}{
		"feedbackId":    fb.ID,
		"userId":        fb.VolunteerID,
		"opportunityId": fb.OpportunityID,
		"rating":        fb.Rating,
		"sentiment":     fb.Sentiment,
	})

	return &Output{
		FeedbackID: fb.ID,
		Sentiment:  fb.Sentiment,
		Topics:     fb.Topics,
		RecordedAt: fb.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
