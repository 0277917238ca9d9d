// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetCodeAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"validation", NewValidationError("bad area"), ErrCodeValidationFailed, false},
		{"fetch", NewFetchFailedError(errors.New("timeout")), ErrCodeFetchFailed, true},
		{"sanitization", NewSanitizationError("rec-1", "no price"), ErrCodeSanitizationFailed, false},
		{"prediction", NewPredictionError("schema mismatch"), ErrCodePredictionFailed, false},
		{"config", NewConfigInvalidError("bad timeout"), ErrCodeConfigInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestSanitizationErrorCarriesRecordID(t *testing.T) {
	err := NewSanitizationError("rec-42", "address missing")
	assert.Equal(t, "rec-42", err.Metadata["recordId"])
}

func TestClassifiersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("search failed: %w", NewValidationError("bad sort key"))

	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsSanitization(wrapped))
	assert.False(t, IsPrediction(wrapped))

	assert.False(t, IsValidation(errors.New("plain error")))
	assert.True(t, IsSanitization(NewSanitizationError("r", "d")))
	assert.True(t, IsPrediction(NewPredictionError("d")))
}
