// Package dto はauthorフィーチャーのHTTPリクエスト/レスポンスを定義します。
package dto

import "cms_backend/internal/feature/author/domain/entity"

// CreateAuthorReq は POST /authors のリクエストボディです。
type CreateAuthorReq struct {
	Name      string  `json:"name" binding:"required,min=1,max=100"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

// AuthorRes はクライアントに返す著者です。
type AuthorRes struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// ToEntity はエンティティに変換します。
func (r CreateAuthorReq) ToEntity() *entity.Author {
	return &entity.Author{Name: r.Name, Bio: r.Bio, AvatarURL: r.AvatarURL}
}

// NewAuthorRes はエンティティをレスポンスに変換します。
func NewAuthorRes(a *entity.Author) AuthorRes {
	return AuthorRes{ID: a.ID, Name: a.Name, Bio: a.Bio, AvatarURL: a.AvatarURL}
}
