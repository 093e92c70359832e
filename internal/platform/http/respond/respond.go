// Package respond translates usecase errors into HTTP responses.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
	"cms_backend/internal/platform/errutil"
	"cms_backend/internal/platform/http/middleware"
	"cms_backend/internal/shared/apperr"
)

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error body. msg replaces the error text for
// domain failures when non-empty. Internal failures are logged with their
// full context and reported without store details.
func Error(c *gin.Context, err error, msg string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		errutil.LogError(c.Request.Context(), slog.Default(), "request failed", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", middleware.RequestIDFrom(c),
		)
		c.JSON(status, api.ErrorResponse{Error: "internal server error"})
		return
	}
	if msg == "" {
		msg = err.Error()
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, api.ErrorResponse{Error: msg})
}

// BindError reports a request that failed binding or validation.
func BindError(c *gin.Context, err error) {
	slog.Warn("request validation failed",
		"error", err,
		"path", c.FullPath(),
		"remote_addr", c.ClientIP(),
		"request_id", middleware.RequestIDFrom(c),
	)
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
}
