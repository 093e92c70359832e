package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"cms_backend/internal/platform/cache"
)

// WithCache wraps the category and author repositories in Redis read-through caches.
// Content listings are not cached. A nil rdb leaves repos unchanged.
func WithCache(repos *Repositories, rdb *redis.Client, ttl time.Duration) *Repositories {
	if rdb == nil {
		return repos
	}
	out := *repos
	out.Categories = cache.NewCachingCategoryRepository(rdb, ttl, repos.Categories, "categories")
	out.Authors = cache.NewCachingAuthorRepository(rdb, ttl, repos.Authors, "authors")
	return &out
}
