package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/services"
	"photostudio/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler renders every error escaping a handler or middleware
// in the shared error body.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := classify(err)
		if code == http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				sl.Err(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Error("failed to write error response", sl.Err(err))
		}
	}
}

func classify(err error) (int, response.ErrorResponse) {
	var (
		ve  *services.ValidationError
		fe  validator.ValidationErrors
		he  *echo.HTTPError
		msg string
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeValidationFailed, ve.Fields)
	case errors.As(err, &fe):
		return http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeValidationFailed, fieldErrors(fe))
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, response.ErrAuthenticationFailed
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, response.ErrorResponseWithDetails(response.CodeForbidden, "Access denied")
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, response.ErrorResponseWithDetails(response.CodeNotFound, "Resource not found")
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, response.ErrorResponseWithDetails(response.CodeConflict, "Resource already exists")
	case errors.Is(err, services.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails(response.CodeTooLarge, "File exceeds the upload limit")
	case errors.As(err, &he):
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, httpErrorBody(he.Code, msg)
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}

func httpErrorBody(code int, msg string) response.ErrorResponse {
	switch code {
	case http.StatusBadRequest:
		return response.ErrorResponseWithDetails(response.CodeInvalidRequest, msg)
	case http.StatusUnauthorized:
		return response.ErrAuthenticationFailed
	case http.StatusForbidden:
		return response.ErrorResponseWithDetails(response.CodeForbidden, "Access denied")
	case http.StatusNotFound:
		return response.ErrorResponseWithDetails(response.CodeNotFound, "Resource not found")
	case http.StatusMethodNotAllowed:
		return response.ErrorResponseWithDetails(response.CodeMethodNotAllowed, "Method not allowed")
	case http.StatusRequestEntityTooLarge:
		return response.ErrorResponseWithDetails(response.CodeTooLarge, "Request body too large")
	case http.StatusTooManyRequests:
		return response.ErrorResponseWithDetails(response.CodeRateLimited, "Too many requests, try again later")
	case http.StatusInternalServerError:
		return response.ErrInternal
	default:
		return response.ErrorResponseWithDetails(strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_"), msg)
	}
}

// fieldErrors keys validator failures by JSON path without the root type.
func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out[field] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must have at least " + fe.Param() + " item(s) or characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "unique":
		return "must not contain duplicates"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
