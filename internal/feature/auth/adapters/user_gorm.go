package adapters

import (
	"context"
	"time"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"cms_backend/internal/feature/auth/domain/entity"
	"cms_backend/internal/feature/auth/usecase"
	"cms_backend/internal/platform/db"
	"cms_backend/internal/shared/objectid"
)

// userModel は users テーブルの行です。
type userModel struct {
	ID             string    `gorm:"primaryKey;size:24"`
	Email          string    `gorm:"uniqueIndex;size:255;not null"`
	HashedPassword string    `gorm:"size:255;not null"`
	FullName       string    `gorm:"size:100;not null"`
	IsActive       bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

// GormModels はこのパッケージでマイグレーションが必要なモデルを返します。
func GormModels() []any {
	return []any{&userModel{}}
}

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(gdb *gorm.DB) *userGorm {
	return &userGorm{db: gdb}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	m := userModel{
		ID:             objectid.New(),
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		FullName:       u.FullName,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return oops.In("user_gorm").Wrapf(err, "insert user")
	}
	u.ID = m.ID
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, oops.In("user_gorm").Wrapf(err, "find user by email")
	}
	return &entity.User{
		ID:             m.ID,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		FullName:       m.FullName,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt.UTC(),
	}, nil
}
