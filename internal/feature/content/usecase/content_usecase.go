// Package usecase はコンテンツのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"cms_backend/internal/feature/content/domain/entity"
	"cms_backend/internal/shared/objectid"
)

const (
	// DefaultListLimit は limit 未指定時の件数です。
	DefaultListLimit = 50
	// MaxListLimit は1回の一覧取得の上限です。
	MaxListLimit = 100
)

// ListFilter は一覧の絞り込み条件です。空文字は絞り込みなし。
type ListFilter struct {
	// Category は category_id の完全一致。
	Category string
	// Search は title・description・各タグに対する大文字小文字を区別しないリテラル部分一致。
	Search string
	Limit  int
}

// ContentRepository はコンテンツの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ContentRepository interface {
	// List は条件に合うコンテンツを新しい順に返します。
	List(ctx context.Context, f ListFilter) ([]entity.ContentItem, error)
	// FindByID は存在しない場合 ErrContentNotFound を返します。
	FindByID(ctx context.Context, id string) (*entity.ContentItem, error)
	// Create はIDを採番します。
	Create(ctx context.Context, item *entity.ContentItem) error
	// Update は patch を適用し保存後の値を返します。存在しなければ ErrContentNotFound。
	Update(ctx context.Context, id string, patch entity.ContentPatch) (*entity.ContentItem, error)
	// Delete は削除できたかどうかを返します。
	Delete(ctx context.Context, id string) (bool, error)
}

// ContentUsecase はコンテンツのビジネスロジックを提供します。
type ContentUsecase struct {
	repo ContentRepository
	now  func() time.Time
}

// NewContentUsecase は ContentUsecase を生成します。
func NewContentUsecase(r ContentRepository) *ContentUsecase {
	return &ContentUsecase{repo: r, now: time.Now}
}

// List は f に合うコンテンツを返します。limit は [1, MaxListLimit] に丸め、0 は DefaultListLimit。
func (u *ContentUsecase) List(ctx context.Context, f ListFilter) ([]entity.ContentItem, error) {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}
	return u.repo.List(ctx, f)
}

// GetByID はコンテンツを返します。不正な形式のIDも ErrContentNotFound。
func (u *ContentUsecase) GetByID(ctx context.Context, id string) (*entity.ContentItem, error) {
	if !objectid.Valid(id) {
		return nil, ErrContentNotFound
	}
	return u.repo.FindByID(ctx, id)
}

// Create は作成日時を付与して保存します。
func (u *ContentUsecase) Create(ctx context.Context, item *entity.ContentItem) (*entity.ContentItem, error) {
	// Mongo はミリ秒精度で保存する
	item.CreatedAt = u.now().UTC().Truncate(time.Millisecond)
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update は patch の非nilフィールドを適用します。
// 空の patch は存在しない場合と同じく ErrContentNotFound を返します。
func (u *ContentUsecase) Update(ctx context.Context, id string, patch entity.ContentPatch) (*entity.ContentItem, error) {
	if !objectid.Valid(id) || patch.IsEmpty() {
		return nil, ErrContentNotFound
	}
	return u.repo.Update(ctx, id, patch)
}

// Delete はコンテンツを削除します。該当なしはエラーではなく false を返します。
func (u *ContentUsecase) Delete(ctx context.Context, id string) (bool, error) {
	if !objectid.Valid(id) {
		return false, nil
	}
	return u.repo.Delete(ctx, id)
}
