// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/feature/auth/domain/entity"
	"cms_backend/internal/feature/auth/transport/http/dto"
	"cms_backend/internal/platform/http/respond"
	jwtmw "cms_backend/internal/platform/jwt"
	"cms_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, email, password, fullName string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	LookupByEmail(ctx context.Context, email string) (*entity.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は作成したユーザーと201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err, "")
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗の理由（ユーザー不在・パスワード不一致）はレスポンスで区別しません。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err, "")
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewTokenRes(token, user))
}

// Me はログイン中のユーザー取得APIエンドポイントを処理します。
// - トークンの subject（メールアドレス）でユーザーを引く
// - ユーザーが削除済みなら401を返却
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		respond.Error(c, apperr.ErrUnauthenticated, "could not validate credentials")
		return
	}
	user, err := h.auth.LookupByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// トークンより先にユーザーが消えた
			respond.Error(c, apperr.ErrUnauthenticated, "could not validate credentials")
			return
		}
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// Logout はログアウトAPIエンドポイントを処理します。
// - 提示されたトークンの jti を有効期限まで失効させる
// - 成功時は204を返却
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		respond.Error(c, apperr.ErrUnauthenticated, "could not validate credentials")
		return
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.auth.Logout(c.Request.Context(), claims.ID, expiresAt); err != nil {
		respond.Error(c, err, "")
		return
	}
	slog.Info("user logged out", "user_id", claims.UserID, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}
