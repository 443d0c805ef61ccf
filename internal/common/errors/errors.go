// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput           ErrorCode = "INVALID_INPUT"
	ErrCodeProfileNotFound        ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeOpportunityNotFound    ErrorCode = "OPPORTUNITY_NOT_FOUND"
	ErrCodeCatalogUnavailable     ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeProfileLookupFailed    ErrorCode = "PROFILE_LOOKUP_FAILED"
	ErrCodeFeedbackInsertFailed   ErrorCode = "FEEDBACK_INSERT_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewInvalidInputError wraps a variable parsing or schema failure.
func NewInvalidInputError(details string, cause error) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false, cause)
}

func NewProfileNotFoundError(userID string, cause error) *StandardError {
	return newError(ErrCodeProfileNotFound, "Volunteer profile not found", fmt.Sprintf("userId: %s", userID), false, cause)
}

func NewOpportunityNotFoundError(opportunityID string, cause error) *StandardError {
	return newError(ErrCodeOpportunityNotFound, "Opportunity not found in catalog", fmt.Sprintf("opportunityId: %s", opportunityID), false, cause)
}

// NewCatalogUnavailableError is retryable; the catalog backend may recover.
func NewCatalogUnavailableError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogUnavailable, "Opportunity catalog unavailable",
		fmt.Sprintf("source: %s, error: %s", source, causeText(err)), true, err)
}

func NewProfileLookupFailedError(userID string, err error) *StandardError {
	return newError(ErrCodeProfileLookupFailed, "Volunteer profile lookup failed",
		fmt.Sprintf("userId: %s, error: %s", userID, causeText(err)), true, err)
}

func NewFeedbackInsertFailedError(err error) *StandardError {
	return newError(ErrCodeFeedbackInsertFailed, "Match feedback insert failed", causeText(err), true, err)
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, causeText(err)), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", causeText(err), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes used in the BPMN
// models. They are currently identical.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeProfileNotFound:        "PROFILE_NOT_FOUND",
	ErrCodeOpportunityNotFound:    "OPPORTUNITY_NOT_FOUND",
	ErrCodeCatalogUnavailable:     "CATALOG_UNAVAILABLE",
	ErrCodeProfileLookupFailed:    "PROFILE_LOOKUP_FAILED",
	ErrCodeFeedbackInsertFailed:   "FEEDBACK_INSERT_FAILED",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
	ErrCodeInternal:               "INTERNAL_ERROR",
}

// GetRetryCount returns how many retries a code deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogUnavailable,
		ErrCodeProfileLookupFailed,
		ErrCodeFeedbackInsertFailed,
		ErrCodeNotificationSendFailed:
		return 3
	default:
		return 0 // business errors
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a StandardError in err's chain, or wraps err as an
// internal error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "PROFILE"), strings.Contains(codeStr, "FEEDBACK"):
		return "DATABASE"
	case strings.Contains(codeStr, "CATALOG"), strings.Contains(codeStr, "OPPORTUNITY"):
		return "CATALOG"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "INTERNAL"
	}
}
