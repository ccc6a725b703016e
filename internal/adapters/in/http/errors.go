package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func statusOf(code errs.Code) int {
	switch code {
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeInvalidTransition, errs.CodeInvalidState:
		return http.StatusConflict
	case errs.CodeQuotaExceeded:
		return http.StatusUnprocessableEntity
	case errs.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeOfStatus(status int) errs.Code {
	switch {
	case status == http.StatusNotFound:
		return errs.CodeNotFound
	case status == http.StatusForbidden:
		return errs.CodeForbidden
	case status < http.StatusInternalServerError:
		return errs.CodeValidation
	default:
		return errs.CodeInternal
	}
}

// NewErrorHandler renders handler errors as ErrorResponse. Business errors keep
// their message and details; anything else is logged and reported as internal_error.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if writeErr := c.JSON(status, body); writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func render(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code := codeOfStatus(httpErr.Code)
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		if code == errs.CodeInternal {
			return httpErr.Code, ErrorResponse{Code: string(code), Error: "internal error"}
		}
		return httpErr.Code, ErrorResponse{Code: string(code), Error: message}
	}

	code := errs.CodeOf(err)
	if code == errs.CodeInternal {
		return http.StatusInternalServerError, ErrorResponse{Code: string(code), Error: "internal error"}
	}

	return statusOf(code), ErrorResponse{
		Code:    string(code),
		Error:   err.Error(),
		Details: errs.Details(err),
	}
}
