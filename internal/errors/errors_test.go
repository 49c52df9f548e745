package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusNotFound, "NOT_FOUND", "product not found")
	assert.Equal(t, "product not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "NOT_FOUND", err.ErrorCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("first", "description is required")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "first", detail.Field)
}

func TestInsufficientDataError(t *testing.T) {
	err := InsufficientDataError("insufficient data for X: 5 trades available, 20 required")

	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "INSUFFICIENT_DATA", err.ErrorCode)
	assert.Contains(t, err.Details, "20 required")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NotFoundError("product"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.ErrorCode)
}

func TestErrPanic(t *testing.T) {
	err := ErrPanic("boom")
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)

	detail, ok := err.Details.(PanicRecovery)
	require.True(t, ok)
	assert.Equal(t, "boom", detail.Message)
}
