package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"photostudio/internal/lib/logger/handlers/slogdiscard"
	"photostudio/internal/services"
	"photostudio/internal/transport/http/dto/request"
	"photostudio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "service validation",
			err:      fmt.Errorf("op: %w", services.NewValidationError("photoIds", "bad")),
			wantCode: http.StatusBadRequest,
			wantErr:  response.CodeValidationFailed,
		},
		{
			name:     "invalid credentials",
			err:      fmt.Errorf("op: %w", services.ErrInvalidCredentials),
			wantCode: http.StatusUnauthorized,
			wantErr:  response.CodeUnauthorized,
		},
		{
			name:     "forbidden",
			err:      fmt.Errorf("op: %w", services.ErrForbidden),
			wantCode: http.StatusForbidden,
			wantErr:  response.CodeForbidden,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("op: %w", services.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantErr:  response.CodeNotFound,
		},
		{
			name:     "conflict",
			err:      fmt.Errorf("op: %w", services.ErrConflict),
			wantCode: http.StatusConflict,
			wantErr:  response.CodeConflict,
		},
		{
			name:     "too large",
			err:      fmt.Errorf("op: %w", services.ErrTooLarge),
			wantCode: http.StatusRequestEntityTooLarge,
			wantErr:  response.CodeTooLarge,
		},
		{
			name:     "bad request from echo",
			err:      echo.NewHTTPError(http.StatusBadRequest, "Invalid id"),
			wantCode: http.StatusBadRequest,
			wantErr:  response.CodeInvalidRequest,
		},
		{
			name:     "method not allowed",
			err:      echo.ErrMethodNotAllowed,
			wantCode: http.StatusMethodNotAllowed,
			wantErr:  response.CodeMethodNotAllowed,
		},
		{
			name:     "rate limited",
			err:      echo.NewHTTPError(http.StatusTooManyRequests, response.CodeRateLimited),
			wantCode: http.StatusTooManyRequests,
			wantErr:  response.CodeRateLimited,
		},
		{
			name:     "unknown",
			err:      errors.New("connection reset"),
			wantCode: http.StatusInternalServerError,
			wantErr:  response.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := classify(tt.err)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.wantErr, body.Error)
		})
	}
}

func TestClassify_FieldErrorsUseJSONNames(t *testing.T) {
	err := NewValidator().Validate(&request.SelectionRequest{})
	require.Error(t, err)

	code, body := classify(err)

	require.Equal(t, http.StatusBadRequest, code)
	fields, ok := body.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", fields["galleryId"])
	assert.Contains(t, fields, "photoIds")
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(slogdiscard.NewDiscardLogger())

	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()

	e.HTTPErrorHandler(services.ErrNotFound, e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
