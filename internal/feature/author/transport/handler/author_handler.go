package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/feature/author/domain/entity"
	"cms_backend/internal/feature/author/transport/http/dto"
	"cms_backend/internal/platform/http/respond"
)

// AuthorUsecase は著者操作のユースケースを定義します。
type AuthorUsecase interface {
	// List は全著者を返します。
	List(ctx context.Context) ([]entity.Author, error)
	// GetByID は ID で著者を1件取得します。
	GetByID(ctx context.Context, id string) (*entity.Author, error)
	// Create は著者を作成します。
	Create(ctx context.Context, a *entity.Author) (*entity.Author, error)
}

// AuthorHandler は /authors 配下のHTTPリクエストを処理します。
type AuthorHandler struct {
	uc AuthorUsecase
}

// NewAuthorHandler は新しい AuthorHandler を作成します。
func NewAuthorHandler(uc AuthorUsecase) *AuthorHandler {
	return &AuthorHandler{uc: uc}
}

// List は著者一覧APIエンドポイントを処理します。
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.uc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	out := make([]dto.AuthorRes, 0, len(authors))
	for i := range authors {
		out = append(out, dto.NewAuthorRes(&authors[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は著者取得APIエンドポイントを処理します。
// - 不正な形式のIDも存在しないIDと同じく404を返却
func (h *AuthorHandler) Get(c *gin.Context) {
	a, err := h.uc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthorRes(a))
}

// Create は著者作成APIエンドポイントを処理します。
// - バリデーションエラー時は400、成功時は201を返却
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	a, err := h.uc.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthorRes(a))
}
