package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "cms_backend/internal/feature/auth/transport/handler"
	authorhandler "cms_backend/internal/feature/author/transport/handler"
	categoryhandler "cms_backend/internal/feature/category/transport/handler"
	contenthandler "cms_backend/internal/feature/content/transport/handler"
	"cms_backend/internal/platform/config"
	platformhandler "cms_backend/internal/platform/http/handler"
	"cms_backend/internal/platform/http/middleware"
	jwtmw "cms_backend/internal/platform/jwt"
	"cms_backend/internal/platform/metrics"
	"cms_backend/internal/shared/ratelimiter"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const secret = "router-test-secret-0123456789abcdef"

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			APIPrefix:      "/api/v1",
			AllowedOrigins: []string{"http://localhost:3000"},
			RequestTimeout: time.Second,
		},
	}
}

// newTestRouter mounts real handlers over nil usecases; only requests rejected
// before reaching a usecase are sent to it.
func newTestRouter(t *testing.T, ready platformhandler.ReadinessChecker, m *metrics.Metrics) *gin.Engine {
	t.Helper()

	r, err := NewRouter(Deps{
		Config:    testConfig(),
		Health:    platformhandler.NewHealthHandler("cms-api", "CMS API", "1.0.0", ready),
		Auth:      authhandler.NewAuthHandler(nil),
		Content:   contenthandler.NewContentHandler(nil),
		Category:  categoryhandler.NewCategoryHandler(nil),
		Author:    authorhandler.NewAuthorHandler(nil),
		Validator: jwtmw.NewValidator(secret),
		Metrics:   m,
	})
	require.NoError(t, err)
	return r
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_ProtectedRoutesRequireBearer(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil, nil)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodPost, "/api/v1/content"},
		{http.MethodPut, "/api/v1/content/65f1a2b3c4d5e6f7a8b9c0d1"},
		{http.MethodDelete, "/api/v1/content/65f1a2b3c4d5e6f7a8b9c0d1"},
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodPut, "/api/v1/categories/65f1a2b3c4d5e6f7a8b9c0d1"},
		{http.MethodDelete, "/api/v1/categories/65f1a2b3c4d5e6f7a8b9c0d1"},
		{http.MethodPost, "/api/v1/authors"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			t.Parallel()

			w := do(r, rt.method, rt.path, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

			w = do(r, rt.method, rt.path, map[string]string{"Authorization": "Bearer not-a-jwt"})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(t, func(context.Context) error { return nil }, nil)

		w := do(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"app":"CMS API","version":"1.0.0","docs":"/api/docs"}`, w.Body.String())

		w = do(r, http.MethodGet, "/api/health", nil)
		assert.JSONEq(t, `{"status":"healthy","service":"cms-api"}`, w.Body.String())

		w = do(r, http.MethodGet, "/api/liveness", nil)
		assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())

		w = do(r, http.MethodGet, "/api/readiness", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	t.Run("store down", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(t, func(context.Context) error { return errors.New("no primary") }, nil)
		w := do(r, http.MethodGet, "/api/readiness", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not ready"}`, w.Body.String())
	})
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil, nil)

	w := do(r, http.MethodGet, "/api/health", map[string]string{middleware.HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))

	w = do(r, http.MethodOptions, "/api/v1/content", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "/api/v1/content", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil, metrics.New())
	_ = do(r, http.MethodGet, "/api/liveness", nil)

	w := do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `cms_http_requests_total{method="GET",route="/api/liveness",status="200"} 1`)

	w = do(newTestRouter(t, nil, nil), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCorsConfig(t *testing.T) {
	t.Parallel()

	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)

	restricted := corsConfig([]string{"https://cms.example"})
	assert.Equal(t, []string{"https://cms.example"}, restricted.AllowOrigins)
	assert.True(t, restricted.AllowCredentials)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	t.Parallel()

	r, err := NewRouter(Deps{
		Config:      testConfig(),
		Health:      platformhandler.NewHealthHandler("cms-api", "CMS API", "1.0.0", nil),
		Auth:        authhandler.NewAuthHandler(nil),
		Content:     contenthandler.NewContentHandler(nil),
		Category:    categoryhandler.NewCategoryHandler(nil),
		Author:      authorhandler.NewAuthorHandler(nil),
		Validator:   jwtmw.NewValidator(secret),
		AuthLimiter: ratelimiter.NewRateLimiter(1, time.Minute),
	})
	require.NoError(t, err)

	// an empty body fails binding before reaching the usecase
	w := do(r, http.MethodPost, "/api/v1/auth/login", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/auth/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// public reads are not throttled
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/liveness", nil).Code)
	}
}

func TestRouter_AuthRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	t.Parallel()

	newRouter := func(trusted []string) *gin.Engine {
		cfg := testConfig()
		cfg.HTTP.TrustedProxies = trusted
		r, err := NewRouter(Deps{
			Config:      cfg,
			Health:      platformhandler.NewHealthHandler("cms-api", "CMS API", "1.0.0", nil),
			Auth:        authhandler.NewAuthHandler(nil),
			Content:     contenthandler.NewContentHandler(nil),
			Category:    categoryhandler.NewCategoryHandler(nil),
			Author:      authorhandler.NewAuthorHandler(nil),
			Validator:   jwtmw.NewValidator(secret),
			AuthLimiter: ratelimiter.NewRateLimiter(1, time.Minute),
		})
		require.NoError(t, err)
		return r
	}

	login := func(r http.Handler, forwardedFor string) int {
		return do(r, http.MethodPost, "/api/v1/auth/login", map[string]string{"X-Forwarded-For": forwardedFor}).Code
	}

	t.Run("untrusted peer", func(t *testing.T) {
		t.Parallel()

		r := newRouter(nil)
		assert.Equal(t, http.StatusBadRequest, login(r, "198.51.100.1"))
		for i := 2; i <= 5; i++ {
			assert.Equal(t, http.StatusTooManyRequests, login(r, fmt.Sprintf("198.51.100.%d", i)))
		}
	})

	t.Run("trusted proxy", func(t *testing.T) {
		t.Parallel()

		// httptest requests come from 192.0.2.1
		r := newRouter([]string{"192.0.2.1"})
		for i := 1; i <= 3; i++ {
			assert.Equal(t, http.StatusBadRequest, login(r, fmt.Sprintf("198.51.100.%d", i)))
		}
		assert.Equal(t, http.StatusTooManyRequests, login(r, "198.51.100.1"))
	})
}

func TestNewRouter_InvalidTrustedProxy(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTP.TrustedProxies = []string{"not-an-ip"}
	_, err := NewRouter(Deps{Config: cfg})
	require.Error(t, err)
}
