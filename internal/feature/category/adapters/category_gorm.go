package adapters

import (
	"context"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"cms_backend/internal/feature/category/domain/entity"
	"cms_backend/internal/feature/category/usecase"
	"cms_backend/internal/platform/db"
	"cms_backend/internal/shared/objectid"
)

type categoryModel struct {
	ID          string  `gorm:"primaryKey;size:24"`
	Name        string  `gorm:"size:100;not null"`
	Slug        string  `gorm:"uniqueIndex;size:100;not null"`
	Description *string `gorm:"type:text"`
}

func (categoryModel) TableName() string { return "categories" }

func (m *categoryModel) toEntity() entity.Category {
	return entity.Category{ID: m.ID, Name: m.Name, Slug: m.Slug, Description: m.Description}
}

// GormModels はこのパッケージでマイグレーションが必要なモデルを返します。
func GormModels() []any {
	return []any{&categoryModel{}}
}

type categoryGorm struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryGorm)(nil)

// NewCategoryGorm は categories テーブルのリポジトリを生成します。
func NewCategoryGorm(gdb *gorm.DB) *categoryGorm {
	return &categoryGorm{db: gdb}
}

// List はID順に最大 limit 件のカテゴリを取得します。
func (r *categoryGorm) List(ctx context.Context, limit int) ([]entity.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, oops.In("category_gorm").Wrapf(err, "list categories")
	}
	out := make([]entity.Category, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// FindByID はIDでカテゴリを取得します。
// 存在しない場合、usecase.ErrCategoryNotFoundを返します。
func (r *categoryGorm) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	if !objectid.Valid(id) {
		return nil, usecase.ErrCategoryNotFound
	}
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindBySlug は slug でカテゴリを取得します。
// 存在しない場合、usecase.ErrCategoryNotFoundを返します。
func (r *categoryGorm) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.first(r.db.WithContext(ctx).Where("slug = ?", slug))
}

func (r *categoryGorm) first(q *gorm.DB) (*entity.Category, error) {
	var m categoryModel
	if err := q.First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, oops.In("category_gorm").Wrapf(err, "find category")
	}
	c := m.toEntity()
	return &c, nil
}

// Create はカテゴリを追加しIDを採番します。
// slug が重複する場合、usecase.ErrSlugAlreadyExistsを返します。
func (r *categoryGorm) Create(ctx context.Context, c *entity.Category) error {
	m := categoryModel{ID: objectid.New(), Name: c.Name, Slug: c.Slug, Description: c.Description}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrSlugAlreadyExists
		}
		return oops.In("category_gorm").With("slug", c.Slug).Wrapf(err, "insert category")
	}
	c.ID = m.ID
	return nil
}

// Update は1トランザクション内で行を読み込み、パッチを当てて保存します。
func (r *categoryGorm) Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	if !objectid.Valid(id) || patch.IsEmpty() {
		return nil, usecase.ErrCategoryNotFound
	}

	var out entity.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m categoryModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		c := m.toEntity()
		patch.Apply(&c)
		m = categoryModel{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = c
		return nil
	})
	switch {
	case err == nil:
		return &out, nil
	case db.IsNotFound(err):
		return nil, usecase.ErrCategoryNotFound
	case db.IsUniqueViolation(err):
		return nil, usecase.ErrSlugAlreadyExists
	default:
		return nil, oops.In("category_gorm").With("id", id).Wrapf(err, "update category")
	}
}

// Delete はカテゴリを削除し、削除できたかどうかを返します。
func (r *categoryGorm) Delete(ctx context.Context, id string) (bool, error) {
	if !objectid.Valid(id) {
		return false, nil
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&categoryModel{})
	if res.Error != nil {
		return false, oops.In("category_gorm").With("id", id).Wrapf(res.Error, "delete category")
	}
	return res.RowsAffected > 0, nil
}
