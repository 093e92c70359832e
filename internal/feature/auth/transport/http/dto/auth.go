// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"cms_backend/internal/feature/auth/domain/entity"
)

// RegisterReq は/auth/registerエンドポイントのリクエストボディを表します。
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
}

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRes はパスワードハッシュを除いたユーザー情報のレスポンスです。
type UserRes struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenUser はトークンと一緒に返す最小限のユーザー情報です。
type TokenUser struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// TokenRes はログイン成功時のレスポンスです。
type TokenRes struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        TokenUser `json:"user"`
}

// NewUserRes はユーザーエンティティをレスポンスに変換します。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// NewTokenRes は bearer トークンのレスポンスを生成します。
func NewTokenRes(token string, u *entity.User) TokenRes {
	return TokenRes{
		AccessToken: token,
		TokenType:   "bearer",
		User:        TokenUser{Email: u.Email, FullName: u.FullName},
	}
}
