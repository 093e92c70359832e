package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"cms_backend/internal/feature/content/domain/entity"
	"cms_backend/internal/feature/content/usecase"
	"cms_backend/internal/platform/db"
	"cms_backend/internal/shared/objectid"
)

type contentModel struct {
	ID          string    `gorm:"primaryKey;size:24"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text;not null"`
	CategoryID  *string   `gorm:"index;size:64"`
	AuthorID    *string   `gorm:"size:64"`
	ImageURL    *string   `gorm:"type:text"`
	Tags        []string  `gorm:"type:text;serializer:json"`
	CreatedAt   time.Time `gorm:"index;not null"`
}

func (contentModel) TableName() string { return "content_items" }

func newContentModel(item *entity.ContentItem) contentModel {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return contentModel{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		AuthorID:    item.AuthorID,
		ImageURL:    item.ImageURL,
		Tags:        tags,
		CreatedAt:   item.CreatedAt,
	}
}

func (m *contentModel) toEntity() entity.ContentItem {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return entity.ContentItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		AuthorID:    m.AuthorID,
		ImageURL:    m.ImageURL,
		Tags:        tags,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// GormModels はこのパッケージでマイグレーションが必要なモデルを返します。
func GormModels() []any {
	return []any{&contentModel{}}
}

type contentGorm struct {
	db *gorm.DB
}

var _ usecase.ContentRepository = (*contentGorm)(nil)

// NewContentGorm は content_items テーブルのリポジトリを生成します。
func NewContentGorm(gdb *gorm.DB) *contentGorm {
	return &contentGorm{db: gdb}
}

// searchBatchSize は検索時に1回のクエリで読む行数です。
const searchBatchSize = 200

// List は条件に一致するアイテムを created_at の新しい順に返します。
// 検索語があるときは、タグを要素ごとに照合できるよう Go 側で絞り込みます。
func (r *contentGorm) List(ctx context.Context, f usecase.ListFilter) ([]entity.ContentItem, error) {
	q := r.db.WithContext(ctx).Model(&contentModel{})
	if f.Category != "" {
		q = q.Where("category_id = ?", f.Category)
	}
	q = q.Order("created_at DESC").Order("id DESC")

	if f.Search != "" {
		out, err := r.search(q.Session(&gorm.Session{}), strings.ToLower(f.Search), f.Limit)
		if err != nil {
			return nil, oops.In("content_gorm").With("category", f.Category).Wrapf(err, "search content items")
		}
		return out, nil
	}

	var rows []contentModel
	if err := q.Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, oops.In("content_gorm").With("category", f.Category).Wrapf(err, "list content items")
	}
	out := make([]entity.ContentItem, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// search は新しい順にキーセットページングで読み進め、limit 件そろうまで照合します。
// SQLite の LOWER は ASCII しか畳み込まないため、比較は strings.ToLower で行います。
func (r *contentGorm) search(q *gorm.DB, needle string, limit int) ([]entity.ContentItem, error) {
	out := []entity.ContentItem{}
	var last *contentModel
	for limit > 0 {
		page := q
		if last != nil {
			page = page.Where("created_at < ? OR (created_at = ? AND id < ?)", last.CreatedAt, last.CreatedAt, last.ID)
		}
		var rows []contentModel
		if err := page.Limit(searchBatchSize).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			if !rows[i].matches(needle) {
				continue
			}
			out = append(out, rows[i].toEntity())
			if len(out) == limit {
				return out, nil
			}
		}
		if len(rows) < searchBatchSize {
			break
		}
		last = &rows[len(rows)-1]
	}
	return out, nil
}

// matches は小文字化済みの needle がタイトル・説明・いずれかのタグに含まれるかを返します。
func (m *contentModel) matches(needle string) bool {
	if strings.Contains(strings.ToLower(m.Title), needle) ||
		strings.Contains(strings.ToLower(m.Description), needle) {
		return true
	}
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// FindByID はIDでアイテムを取得します。
// 存在しない場合、usecase.ErrContentNotFoundを返します。
func (r *contentGorm) FindByID(ctx context.Context, id string) (*entity.ContentItem, error) {
	if !objectid.Valid(id) {
		return nil, usecase.ErrContentNotFound
	}
	var m contentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrContentNotFound
		}
		return nil, oops.In("content_gorm").With("id", id).Wrapf(err, "find content item")
	}
	item := m.toEntity()
	return &item, nil
}

// Create はアイテムを追加しIDを採番します。
func (r *contentGorm) Create(ctx context.Context, item *entity.ContentItem) error {
	m := newContentModel(item)
	m.ID = objectid.New()
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return oops.In("content_gorm").With("title", item.Title).Wrapf(err, "insert content item")
	}
	item.ID = m.ID
	return nil
}

// Update は1トランザクション内で行を読み込み、パッチを当てて保存します。
func (r *contentGorm) Update(ctx context.Context, id string, patch entity.ContentPatch) (*entity.ContentItem, error) {
	if !objectid.Valid(id) || patch.IsEmpty() {
		return nil, usecase.ErrContentNotFound
	}

	var out entity.ContentItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m contentModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		item := m.toEntity()
		patch.Apply(&item)
		m = newContentModel(&item)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrContentNotFound
		}
		return nil, oops.In("content_gorm").With("id", id).Wrapf(err, "update content item")
	}
	return &out, nil
}

// Delete はアイテムを削除し、削除できたかどうかを返します。
func (r *contentGorm) Delete(ctx context.Context, id string) (bool, error) {
	if !objectid.Valid(id) {
		return false, nil
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&contentModel{})
	if res.Error != nil {
		return false, oops.In("content_gorm").With("id", id).Wrapf(res.Error, "delete content item")
	}
	return res.RowsAffected > 0, nil
}
