package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cms_backend/internal/feature/category/domain/entity"
	"cms_backend/internal/feature/category/usecase"
)

// CachingCategoryRepository は CategoryRepository に Redis キャッシュを追加するデコレーターです。
// 読み取りはキャッシュを経由し、書き込みのたびに namespace 全体を削除します。
type CachingCategoryRepository struct {
	readThrough
	inner usecase.CategoryRepository
}

var _ usecase.CategoryRepository = (*CachingCategoryRepository)(nil)

// NewCachingCategoryRepository は inner をラップします。namespace が空なら "categories" を使います。
func NewCachingCategoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CategoryRepository, namespace string) *CachingCategoryRepository {
	if namespace == "" {
		namespace = "categories"
	}
	return &CachingCategoryRepository{readThrough: newReadThrough(rdb, ttl, namespace), inner: inner}
}

// List は一覧をキャッシュ経由で返します。
func (c *CachingCategoryRepository) List(ctx context.Context, limit int) ([]entity.Category, error) {
	return load(ctx, c.readThrough, c.key("list", strconv.Itoa(limit)), func(ctx context.Context) ([]entity.Category, error) {
		return c.inner.List(ctx, limit)
	})
}

// FindByID は ID で1件をキャッシュ経由で返します。
func (c *CachingCategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	return load(ctx, c.readThrough, c.key("id", id), func(ctx context.Context) (*entity.Category, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// FindBySlug はスラッグで1件をキャッシュ経由で返します。
func (c *CachingCategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return load(ctx, c.readThrough, c.key("slug", slug), func(ctx context.Context) (*entity.Category, error) {
		return c.inner.FindBySlug(ctx, slug)
	})
}

// Create は inner に委譲し、成功したらキャッシュを無効化します。
func (c *CachingCategoryRepository) Create(ctx context.Context, cat *entity.Category) error {
	if err := c.inner.Create(ctx, cat); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update は inner に委譲し、成功したらキャッシュを無効化します。
func (c *CachingCategoryRepository) Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	out, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

// Delete は inner に委譲し、削除できたらキャッシュを無効化します。
func (c *CachingCategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := c.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		c.invalidate(ctx)
	}
	return ok, nil
}
