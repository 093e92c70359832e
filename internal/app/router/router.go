// Package router はGinエンジンとルーティングを構築します。
package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "cms_backend/internal/feature/auth/transport/handler"
	authorhandler "cms_backend/internal/feature/author/transport/handler"
	categoryhandler "cms_backend/internal/feature/category/transport/handler"
	contenthandler "cms_backend/internal/feature/content/transport/handler"
	"cms_backend/internal/platform/config"
	platformhandler "cms_backend/internal/platform/http/handler"
	"cms_backend/internal/platform/http/middleware"
	"cms_backend/internal/platform/http/validation"
	jwtmw "cms_backend/internal/platform/jwt"
	"cms_backend/internal/platform/metrics"
)

// Deps はルーターが組み込むハンドラーとミドルウェアの依存です。
type Deps struct {
	Config    *config.Config
	Health    *platformhandler.HealthHandler
	Auth      *authhandler.AuthHandler
	Content   *contenthandler.ContentHandler
	Category  *categoryhandler.CategoryHandler
	Author    *authorhandler.AuthorHandler
	Validator jwtmw.TokenValidator

	// Revoked が nil の場合、失効リストは参照しない
	Revoked jwtmw.RevocationChecker
	// Metrics が nil の場合は /metrics を公開しない
	Metrics *metrics.Metrics
	// AuthLimiter はクライアントごとに register/login を制限する。nil で無効
	AuthLimiter middleware.Limiter
}

// NewRouter はミドルウェアとルートを登録したGinエンジンを返します。
// trusted_proxies が不正な場合はエラーを返します。
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	// X-Forwarded-For は信頼済みプロキシ経由のときだけ採用する
	if err := r.SetTrustedProxies(d.Config.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("http.trusted_proxies: %w", err)
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.Use(cors.New(corsConfig(d.Config.HTTP.AllowedOrigins)))
	r.Use(middleware.Timeout(d.Config.HTTP.RequestTimeout))

	// 認証不要
	// 導通確認用
	r.GET("/", d.Health.Root)
	r.GET("/api/health", d.Health.Health)
	r.HEAD("/api/health", d.Health.Health)
	r.GET("/api/readiness", d.Health.Readiness)
	r.GET("/api/liveness", d.Health.Liveness)

	auth := jwtmw.AuthRequired(d.Validator, d.Revoked)
	v1 := r.Group(d.Config.HTTP.APIPrefix)

	throttle := middleware.RateLimit(d.AuthLimiter)
	authGroup := v1.Group("/auth")
	{
		// 新規ユーザー登録
		authGroup.POST("/register", throttle, d.Auth.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", throttle, d.Auth.Login)
		authGroup.GET("/me", auth, d.Auth.Me)
		authGroup.POST("/logout", auth, d.Auth.Logout)
	}

	content := v1.Group("/content")
	{
		content.GET("", d.Content.List)
		content.GET("/:id", d.Content.Get)
		content.POST("", auth, d.Content.Create)
		content.PUT("/:id", auth, d.Content.Update)
		content.DELETE("/:id", auth, d.Content.Delete)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", d.Category.List)
		categories.GET("/:id", d.Category.Get)
		categories.GET("/slug/:slug", d.Category.GetBySlug)
		categories.POST("", auth, d.Category.Create)
		categories.PUT("/:id", auth, d.Category.Update)
		categories.DELETE("/:id", auth, d.Category.Delete)
	}

	authors := v1.Group("/authors")
	{
		authors.GET("", d.Author.List)
		authors.GET("/:id", d.Author.Get)
		authors.POST("", auth, d.Author.Create)
	}

	return r, nil
}

// corsConfig は設定されたオリジンを credentials 付きで許可します。
// 空の場合は credentials なしで全オリジンを許可します。
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
