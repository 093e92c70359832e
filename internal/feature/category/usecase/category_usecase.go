// Package usecase はカテゴリのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"cms_backend/internal/feature/category/domain/entity"
	"cms_backend/internal/shared/objectid"
)

// ListLimit は List が返すカテゴリ数の上限です。
const ListLimit = 100

// CategoryRepository はカテゴリの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CategoryRepository interface {
	// List はID順に最大 limit 件のカテゴリを返します。
	List(ctx context.Context, limit int) ([]entity.Category, error)
	// FindByID は存在しない場合 ErrCategoryNotFound を返します。
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	// FindBySlug は存在しない場合 ErrCategoryNotFound を返します。
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// Create はIDを採番します。ユニークインデックス違反は ErrSlugAlreadyExists。
	Create(ctx context.Context, c *entity.Category) error
	// Update は patch を適用し保存後の値を返します。存在しなければ ErrCategoryNotFound。
	Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error)
	// Delete は削除できたかどうかを返します。
	Delete(ctx context.Context, id string) (bool, error)
}

// CategoryUsecase はカテゴリのビジネスロジックを提供します。
type CategoryUsecase struct {
	repo CategoryRepository
}

// NewCategoryUsecase は CategoryUsecase を生成します。
func NewCategoryUsecase(r CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{repo: r}
}

// List はカテゴリを最大 ListLimit 件返します。
func (u *CategoryUsecase) List(ctx context.Context) ([]entity.Category, error) {
	return u.repo.List(ctx, ListLimit)
}

// GetByID はカテゴリを返します。不正な形式のIDも ErrCategoryNotFound。
func (u *CategoryUsecase) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !objectid.Valid(id) {
		return nil, ErrCategoryNotFound
	}
	return u.repo.FindByID(ctx, id)
}

// GetBySlug は slug が完全一致するカテゴリを返します。
func (u *CategoryUsecase) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return u.repo.FindBySlug(ctx, slug)
}

// Create はカテゴリを保存します。
// 事前チェックで重複を409にし、一意性そのものはユニークインデックスで保証します。
func (u *CategoryUsecase) Create(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	if err := u.checkSlugFree(ctx, c.Slug, ""); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update は patch の非nilフィールドを適用します。
// 空の patch は存在しない場合と同じく ErrCategoryNotFound を返します。
func (u *CategoryUsecase) Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	if !objectid.Valid(id) || patch.IsEmpty() {
		return nil, ErrCategoryNotFound
	}
	if patch.Slug != nil {
		if err := u.checkSlugFree(ctx, *patch.Slug, id); err != nil {
			return nil, err
		}
	}
	return u.repo.Update(ctx, id, patch)
}

// Delete はカテゴリを削除します。該当なしはエラーではなく false を返します。
// 参照しているコンテンツはそのまま残ります。
func (u *CategoryUsecase) Delete(ctx context.Context, id string) (bool, error) {
	if !objectid.Valid(id) {
		return false, nil
	}
	return u.repo.Delete(ctx, id)
}

// checkSlugFree は selfID 以外のカテゴリが slug を使っていれば ErrSlugAlreadyExists を返します。
func (u *CategoryUsecase) checkSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := u.repo.FindBySlug(ctx, slug)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check slug: %w", err)
	case existing.ID != selfID:
		return ErrSlugAlreadyExists
	default:
		return nil
	}
}
