// Package middleware provides the Gin middleware shared by every route.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is the header carrying the request identifier.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID is the gin context key holding the request identifier.
	ContextRequestID = "requestID"

	maxRequestIDLength = 128
)

// RequestID propagates an incoming X-Request-ID or assigns a new UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom returns the identifier set by RequestID, or "".
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// Timeout bounds the request context so store calls cannot hang forever.
// A zero or negative timeout disables it.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AccessLog writes one structured log line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
			"request_id", RequestIDFrom(c),
		}
		if last := c.Errors.Last(); last != nil {
			attrs = append(attrs, "error", last.Err)
		}
		slog.Info("http request", attrs...)
	}
}
