package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
)

// Limiter counts one call for key and reports whether it may proceed.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// RateLimit rejects clients over the limit with 429 and a Retry-After header.
// A nil limiter disables the check.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ok, retryAfter := l.Allow(c.ClientIP())
		if !ok {
			slog.Warn("rate limit exceeded",
				"path", c.FullPath(),
				"remote_addr", c.ClientIP(),
				"request_id", RequestIDFrom(c),
			)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
