package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{"missing input", ErrTypeMissingInput, "MISSING_INPUT"},
		{"data quality", ErrTypeDataQuality, "DATA_QUALITY"},
		{"parsing", ErrTypeParsing, "PARSING"},
		{"storage", ErrTypeStorage, "STORAGE"},
		{"render", ErrTypeRender, "RENDER"},
		{"config", ErrTypeConfig, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewAppError(ErrTypeStorage, "write failed", nil),
			wantMessage: "[STORAGE] write failed",
		},
		{
			name:        "error with cause",
			appError:    NewAppError(ErrTypeParsing, "bad header", fmt.Errorf("EOF")),
			wantMessage: "[PARSING] bad header: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewStorageError("open summary", os.ErrNotExist)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, os.ErrNotExist, err.Unwrap())
}

func TestNewMissingInputError(t *testing.T) {
	err := NewMissingInputError("/data/step23_final_summary_table.csv", "classifier")

	assert.Equal(t, ErrTypeMissingInput, err.Type)
	assert.Contains(t, err.Error(), "/data/step23_final_summary_table.csv")
	assert.Contains(t, err.Error(), "run classifier first")
	assert.Equal(t, "classifier", err.Context["producer"])

	noProducer := NewMissingInputError("/data/x.csv", "")
	assert.NotContains(t, noProducer.Error(), "run")
}

func TestIsType(t *testing.T) {
	missing := NewMissingInputError("a.csv", "classifier")
	wrapped := fmt.Errorf("stage figures: %w", missing)
	warning := NewDataQualityWarning("time series absent", nil)
	nested := NewRenderError("04_timeseries_entropy.png", warning)

	assert.True(t, IsMissingInput(missing))
	assert.True(t, IsMissingInput(wrapped))
	assert.False(t, IsMissingInput(warning))
	assert.True(t, IsDataQuality(warning))
	assert.True(t, IsDataQuality(nested))
	assert.True(t, IsType(nested, ErrTypeRender))
	assert.False(t, IsMissingInput(errors.New("plain")))
	assert.False(t, IsMissingInput(nil))
}

func TestWithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeConfig, Message: "bad"}
	err.WithContext("field", "dpi")

	require.NotNil(t, err.Context)
	assert.Equal(t, "dpi", err.Context["field"])
}
