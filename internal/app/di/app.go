package di

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cms_backend/internal/app/router"
	authhandler "cms_backend/internal/feature/auth/transport/handler"
	authusecase "cms_backend/internal/feature/auth/usecase"
	authorhandler "cms_backend/internal/feature/author/transport/handler"
	authorusecase "cms_backend/internal/feature/author/usecase"
	categoryhandler "cms_backend/internal/feature/category/transport/handler"
	categoryusecase "cms_backend/internal/feature/category/usecase"
	contenthandler "cms_backend/internal/feature/content/transport/handler"
	contentusecase "cms_backend/internal/feature/content/usecase"
	"cms_backend/internal/platform/config"
	platformhandler "cms_backend/internal/platform/http/handler"
	"cms_backend/internal/platform/metrics"
	"cms_backend/internal/platform/http/middleware"
	"cms_backend/internal/platform/password"
	"cms_backend/internal/shared/ratelimiter"
)

// NewEngine assembles usecases, handlers and the router over repos.
// rdb may be nil: caching and token revocation are then disabled.
func NewEngine(cfg *config.Config, repos *Repositories, rdb *redis.Client) (*gin.Engine, error) {
	gen, val, err := NewTokens(cfg.Auth)
	if err != nil {
		return nil, err
	}
	revoker := NewRevocationStore(rdb)
	repos = WithCache(repos, rdb, cfg.Cache.TTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(repos.Users, password.NewBcryptHasher(cfg.Auth.BcryptCost), gen, revoker)
	categoryUC := categoryusecase.NewCategoryUsecase(repos.Categories)
	authorUC := authorusecase.NewAuthorUsecase(repos.Authors)
	contentUC := contentusecase.NewContentUsecase(repos.Content)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	var limiter middleware.Limiter
	if cfg.HTTP.AuthRateLimit > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.HTTP.AuthRateLimit, time.Minute)
	}

	var ready platformhandler.ReadinessChecker
	if repos.Ping != nil {
		ready = func(ctx context.Context) error { return repos.Ping(ctx) }
	}

	return router.NewRouter(router.Deps{
		Config:      cfg,
		Health:      platformhandler.NewHealthHandler(cfg.App.Service, cfg.App.Name, cfg.App.Version, ready),
		Auth:        authhandler.NewAuthHandler(authUC),
		Content:     contenthandler.NewContentHandler(contentUC),
		Category:    categoryhandler.NewCategoryHandler(categoryUC),
		Author:      authorhandler.NewAuthorHandler(authorUC),
		Validator:   val,
		Revoked:     revoker,
		Metrics:     m,
		AuthLimiter: limiter,
	})
}
