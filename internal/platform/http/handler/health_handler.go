// Package handler はプラットフォーム共通のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
)

// ReadinessChecker はストアに到達できるかを返します。
type ReadinessChecker func(ctx context.Context) error

// readinessTimeout は1回の readiness チェックの上限時間です。
const readinessTimeout = 2 * time.Second

// HealthHandler はルートの情報エンドポイントとヘルスチェック系エンドポイントを処理します。
type HealthHandler struct {
	service string
	appName string
	version string
	ready   ReadinessChecker
}

// NewHealthHandler は HealthHandler を生成します。
// ready が nil の場合は常に ready を返します。
func NewHealthHandler(service, appName, version string, ready ReadinessChecker) *HealthHandler {
	return &HealthHandler{service: service, appName: appName, version: version, ready: ready}
}

// Root はアプリ名・バージョン・ドキュメントの場所を返します。
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, api.InfoResponse{App: h.appName, Version: h.version, Docs: "/api/docs"})
}

// Health は /health エンドポイントを処理します。
// HTTPメソッドに応じて応答し、キャッシュを無効化します。
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.StatusResponse{Status: "healthy", Service: h.service})
	}
}

// Liveness はプロセスが応答できる限り alive を返します。
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, api.StatusResponse{Status: "alive"})
}

// Readiness はストアに ping し、ready または not ready（503）を返します。
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, api.StatusResponse{Status: "not ready"})
			return
		}
	}
	c.JSON(http.StatusOK, api.StatusResponse{Status: "ready"})
}
