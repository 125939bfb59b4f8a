package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Challenge/attempt specific errors
	CodeChallengeNotFound     ErrorCode = "CHALLENGE_NOT_FOUND"
	CodeInvalidQuestionFormat ErrorCode = "INVALID_QUESTION_FORMAT"
	CodeFetchFailed           ErrorCode = "FETCH_FAILED"
	CodeTransport             ErrorCode = "TRANSPORT_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches additional context to the error for API responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewChallengeNotFoundError(challengeID string) *DomainError {
	return NewError(CodeChallengeNotFound, fmt.Sprintf("Challenge not found with ID: %s", challengeID), nil)
}

// NewInvalidQuestionFormatError marks a single question as malformed. It is
// contained to that question; sessions carrying one must keep running.
func NewInvalidQuestionFormatError(questionID, reason string) *DomainError {
	return NewError(CodeInvalidQuestionFormat, fmt.Sprintf("Invalid question format: %s", reason), nil).
		WithContext("question_id", questionID)
}

// NewFetchFailedError wraps a challenge fetch failure. Terminal for the attempt.
func NewFetchFailedError(challengeID string, cause error) *DomainError {
	return NewError(CodeFetchFailed, fmt.Sprintf("Failed to fetch challenge %s", challengeID), cause)
}

// NewTransportError wraps a network-level failure. Recoverable; callers may retry
// with the same payload.
func NewTransportError(cause error) *DomainError {
	return NewError(CodeTransport, "Transport failure", cause)
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field validation failures for a request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (%d error(s))", e[0].Error(), len(e))
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeMissingField),
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeInvalidFormat),
		Message: fmt.Sprintf("%s has invalid format: %v", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeOutOfRange),
		Message: fmt.Sprintf("%s is out of range: %d (allowed %d-%d)", field, value, min, max),
	}
}
