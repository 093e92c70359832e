package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cms_backend/internal/feature/author/domain/entity"
	"cms_backend/internal/feature/author/usecase"
)

// CachingAuthorRepository は AuthorRepository に Redis キャッシュを追加するデコレーターです。
type CachingAuthorRepository struct {
	readThrough
	inner usecase.AuthorRepository
}

var _ usecase.AuthorRepository = (*CachingAuthorRepository)(nil)

// NewCachingAuthorRepository は inner をラップします。namespace が空なら "authors" を使います。
func NewCachingAuthorRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AuthorRepository, namespace string) *CachingAuthorRepository {
	if namespace == "" {
		namespace = "authors"
	}
	return &CachingAuthorRepository{readThrough: newReadThrough(rdb, ttl, namespace), inner: inner}
}

// List は一覧をキャッシュ経由で返します。
func (c *CachingAuthorRepository) List(ctx context.Context, limit int) ([]entity.Author, error) {
	return load(ctx, c.readThrough, c.key("list", strconv.Itoa(limit)), func(ctx context.Context) ([]entity.Author, error) {
		return c.inner.List(ctx, limit)
	})
}

// FindByID は ID で1件をキャッシュ経由で返します。
func (c *CachingAuthorRepository) FindByID(ctx context.Context, id string) (*entity.Author, error) {
	return load(ctx, c.readThrough, c.key("id", id), func(ctx context.Context) (*entity.Author, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// Create は inner に委譲し、成功したらキャッシュを無効化します。
func (c *CachingAuthorRepository) Create(ctx context.Context, a *entity.Author) error {
	if err := c.inner.Create(ctx, a); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}
