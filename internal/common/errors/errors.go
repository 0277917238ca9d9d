// Package errors provides standardized error handling for the search pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Bad query, rejected before any I/O. User-correctable.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Live API attempt failed. Internal only: the client always recovers
	// by falling back to mock data, so this code never reaches a caller
	// of Search.
	ErrCodeFetchFailed ErrorCode = "FETCH_FAILED"

	// One malformed record. Policy: skip the record, keep the batch.
	ErrCodeSanitizationFailed ErrorCode = "SANITIZATION_FAILED"

	// Feature vector does not match the model's input contract. Fatal
	// for the whole search call.
	ErrCodePredictionFailed ErrorCode = "PREDICTION_FAILED"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable bad-query error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Invalid search query",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFetchFailedError creates a retryable upstream fetch error.
func NewFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailed,
		Message:   "Property API fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSanitizationError creates a non-retryable per-record error.
func NewSanitizationError(recordID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSanitizationFailed,
		Message:   "Property record could not be sanitized",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"recordId": recordID},
		Timestamp: time.Now().UTC(),
	}
}

// NewPredictionError creates a non-retryable model contract error.
func NewPredictionError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePredictionFailed,
		Message:   "Feature vector does not match the model input schema",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

func codeOf(err error) (ErrorCode, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code, true
	}
	return "", false
}

// IsValidation reports whether err is a bad-query error.
func IsValidation(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeValidationFailed
}

// IsSanitization reports whether err is a per-record sanitization error.
func IsSanitization(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeSanitizationFailed
}

// IsPrediction reports whether err is a model contract error.
func IsPrediction(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodePredictionFailed
}
