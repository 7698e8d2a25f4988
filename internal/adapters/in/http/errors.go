package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

const (
	codeValidation = "VALIDATION_ERROR"
	codeInternal   = "INTERNAL_ERROR"
)

// NewErrorHandler renders every error returned by a handler or middleware as
// an ErrorResponse. Order errors carry their own status; input validation
// errors are 400; anything unrecognised is logged and answered with 500.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method,
				"path", ctx.Request().URL.Path,
				"error", err,
			)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, ErrorResponse) {
	var orderErr *errs.OrderError
	if errors.As(err, &orderErr) {
		metrics.OrderErrors.WithLabelValues(string(orderErr.Code)).Inc()
		return orderErr.StatusCode, ErrorResponse{Code: string(orderErr.Code), Message: orderErr.Message}
	}

	if errs.IsValidation(err) {
		return http.StatusBadRequest, ErrorResponse{Code: codeValidation, Message: err.Error()}
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return http.StatusNotFound, ErrorResponse{Code: string(errs.CodeNotFound), Message: err.Error()}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorResponse{Code: statusCode(httpErr.Code), Message: fmt.Sprint(httpErr.Message)}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Code:    codeInternal,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// statusCode names an HTTP status the way order error codes are spelled,
// e.g. 405 -> METHOD_NOT_ALLOWED.
func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeValidation
	case http.StatusNotFound:
		return string(errs.CodeNotFound)
	case http.StatusInternalServerError:
		return codeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
