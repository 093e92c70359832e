package adapters

import (
	"context"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"cms_backend/internal/feature/author/domain/entity"
	"cms_backend/internal/feature/author/usecase"
	"cms_backend/internal/platform/db"
	"cms_backend/internal/shared/objectid"
)

type authorModel struct {
	ID        string  `gorm:"primaryKey;size:24"`
	Name      string  `gorm:"index;size:100;not null"`
	Bio       *string `gorm:"type:text"`
	AvatarURL *string `gorm:"size:2048"`
}

func (authorModel) TableName() string { return "authors" }

func (m *authorModel) toEntity() entity.Author {
	return entity.Author{ID: m.ID, Name: m.Name, Bio: m.Bio, AvatarURL: m.AvatarURL}
}

// GormModels はこのパッケージでマイグレーションが必要なモデルを返します。
func GormModels() []any {
	return []any{&authorModel{}}
}

type authorGorm struct {
	db *gorm.DB
}

var _ usecase.AuthorRepository = (*authorGorm)(nil)

// NewAuthorGorm は authors テーブルのリポジトリを生成します。
func NewAuthorGorm(gdb *gorm.DB) *authorGorm {
	return &authorGorm{db: gdb}
}

// List はID順に最大 limit 件の著者を取得します。
func (r *authorGorm) List(ctx context.Context, limit int) ([]entity.Author, error) {
	var rows []authorModel
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, oops.In("author_gorm").Wrapf(err, "list authors")
	}
	out := make([]entity.Author, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// FindByID はIDで著者を取得します。
// 存在しない場合、usecase.ErrAuthorNotFoundを返します。
func (r *authorGorm) FindByID(ctx context.Context, id string) (*entity.Author, error) {
	if !objectid.Valid(id) {
		return nil, usecase.ErrAuthorNotFound
	}
	var m authorModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrAuthorNotFound
		}
		return nil, oops.In("author_gorm").With("id", id).Wrapf(err, "find author")
	}
	a := m.toEntity()
	return &a, nil
}

// Create は著者を追加しIDを採番します。
func (r *authorGorm) Create(ctx context.Context, a *entity.Author) error {
	m := authorModel{ID: objectid.New(), Name: a.Name, Bio: a.Bio, AvatarURL: a.AvatarURL}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return oops.In("author_gorm").Wrapf(err, "insert author")
	}
	a.ID = m.ID
	return nil
}
