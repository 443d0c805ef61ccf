// internal/workers/matching/notify-recommendations/handler.go
package notifyrecommendations

import (
	"context"
	"encoding/json"
	"fmt"

	"volunteer-matching/internal/common/camunda"
	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "notify-recommendations"
)

// EmailSender is satisfied by *aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text, html string) (string, error)
}

// SMSSender is satisfied by *aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	email        EmailSender
	sms          SMSSender
	validator    *validation.SchemaValidator
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, email EmailSender, sms SMSSender, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		email:        email,
		sms:          sms,
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
	if len(input.Recommendations) == 0 {
		h.logger.Info("no recommendations to send", nil)
		return &Output{Status: StatusSkipped}, nil
	}

	sendEmail := h.config.EmailEnabled && h.email != nil && input.Email != ""
	sendSMS := h.config.SMSEnabled && h.sms != nil && input.Phone != ""
	if !sendEmail && !sendSMS {
		return &Output{Status: StatusDisabled}, nil
	}

	items := toItems(input.Recommendations, h.config.MaxItems)
	out := &Output{Status: StatusSent}

	if sendEmail {
		text, html, err := renderEmail(input.Name, items)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		id, err := h.email.SendEmail(ctx, input.Email, emailSubject, text, html)
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError("email", err)
		}
		out.EmailSent = true
		out.MessageID = id
	}

	if sendSMS {
		id, err := h.sms.SendSMS(ctx, input.Phone, renderSMS(items))
		switch {
		case err != nil && out.EmailSent:
			// a retry would resend the email
			h.logger.Warn("sms send failed after email was delivered", map[string]interface{}{
				"error": err,
			})
		case err != nil:
			return nil, apperrors.NewNotificationSendFailedError("sms", err)
		default:
			out.SMSSent = true
			if out.MessageID == "" {
				out.MessageID = id
			}
		}
	}

	h.logger.Info("recommendations sent", map[string]interface{}{
		"items":     len(items),
		"emailSent": out.EmailSent,
		"smsSent":   out.SMSSent,
		"messageId": out.MessageID,
	})
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
