// errors_test.go - Tests for API error mapping
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecodeError_StatusMapping(t *testing.T) {
	tests := []struct {
		kind       models.ErrorKind
		wantStatus int
	}{
		{models.KindEmptyInput, http.StatusBadRequest},
		{models.KindInvalidSymbol, http.StatusBadRequest},
		{models.KindDecompressFailed, http.StatusUnprocessableEntity},
		{models.KindNotRecognizedFormat, http.StatusUnprocessableEntity},
		{models.KindUnknownControlCode, http.StatusUnprocessableEntity},
		{models.KindUnexpectedEndOfData, http.StatusUnprocessableEntity},
		{models.KindInvalidFloatFormat, http.StatusUnprocessableEntity},
		{models.KindInvalidNumber, http.StatusUnprocessableEntity},
		{models.KindInvalidEscape, http.StatusUnprocessableEntity},
		{models.KindMissingData, http.StatusUnprocessableEntity},
		{models.KindUnknownDungeon, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			apiErr := NewDecodeError(models.NewDecodeError(tt.kind, "failed"))
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, string(tt.kind), apiErr.Code)
			assert.Equal(t, "failed", apiErr.Message)
			assert.Nil(t, apiErr.Offset)
		})
	}
}

func TestNewDecodeError_Details(t *testing.T) {
	wrapped := fmt.Errorf("stage: %w", models.NewDecodeErrorAt(models.KindInvalidSymbol, 7, "invalid symbol"))
	apiErr := NewDecodeError(wrapped)
	require.NotNil(t, apiErr.Offset)
	assert.Equal(t, 7, *apiErr.Offset)

	cause := errors.New("unexpected EOF")
	apiErr = NewDecodeError(models.WrapDecodeError(models.KindDecompressFailed, cause, "inflate"))
	assert.Equal(t, "unexpected EOF", apiErr.Details)

	apiErr = NewDecodeError(errors.New("plain"))
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", NewNotFoundError("route", "x"), http.StatusNotFound, "NOT_FOUND"},
		{"decode error", models.NewDecodeError(models.KindMissingData, "no pulls"), http.StatusUnprocessableEntity, "MISSING_DATA"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestErrorHandler_HidesDetails(t *testing.T) {
	SetExposeErrorDetails(false)
	defer SetExposeErrorDetails(true)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	ErrorHandler(errors.New("secret path"), c)

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Details)
}
