package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	allowed int
	keys    []string
}

func (s *stubLimiter) Allow(key string) (bool, time.Duration) {
	s.keys = append(s.keys, key)
	if len(s.keys) <= s.allowed {
		return true, 0
	}
	return false, 1500 * time.Millisecond
}

func TestRateLimit(t *testing.T) {
	lim := &stubLimiter{allowed: 1}
	r := gin.New()
	r.POST("/login", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call().Code)

	w := call()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
	assert.Equal(t, []string{"192.0.2.7", "192.0.2.7"}, lim.keys)
}

func TestRateLimit_NilDisables(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
