// Package usecase は著者のビジネスロジックを実装します。
package usecase

import (
	"context"

	"cms_backend/internal/feature/author/domain/entity"
	"cms_backend/internal/shared/objectid"
)

// ListLimit は List が返す著者数の上限です。
const ListLimit = 100

// AuthorRepository は著者の永続化層を抽象化します。
type AuthorRepository interface {
	List(ctx context.Context, limit int) ([]entity.Author, error)
	FindByID(ctx context.Context, id string) (*entity.Author, error)
	Create(ctx context.Context, a *entity.Author) error
}

// AuthorUsecase は著者のビジネスロジックを提供します。
type AuthorUsecase struct {
	repo AuthorRepository
}

// NewAuthorUsecase は AuthorUsecase を生成します。
func NewAuthorUsecase(r AuthorRepository) *AuthorUsecase {
	return &AuthorUsecase{repo: r}
}

// List は著者をID順に最大 ListLimit 件返します。
func (u *AuthorUsecase) List(ctx context.Context) ([]entity.Author, error) {
	return u.repo.List(ctx, ListLimit)
}

// GetByID は存在しないIDも不正な形式のIDも ErrAuthorNotFound を返します。
func (u *AuthorUsecase) GetByID(ctx context.Context, id string) (*entity.Author, error) {
	if !objectid.Valid(id) {
		return nil, ErrAuthorNotFound
	}
	return u.repo.FindByID(ctx, id)
}

// Create は著者を保存し、採番済みのエンティティを返します。
func (u *AuthorUsecase) Create(ctx context.Context, a *entity.Author) (*entity.Author, error) {
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
