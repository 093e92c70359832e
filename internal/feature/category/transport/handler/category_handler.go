package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/feature/category/domain/entity"
	"cms_backend/internal/feature/category/transport/http/dto"
	"cms_backend/internal/platform/http/respond"
	"cms_backend/internal/shared/apperr"
)

// CategoryUsecase はカテゴリ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CategoryUsecase interface {
	// List は全カテゴリを返します。
	List(ctx context.Context) ([]entity.Category, error)
	// GetByID は ID でカテゴリを1件取得します。
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetBySlug はスラッグでカテゴリを1件取得します。
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// Create はカテゴリを作成します。スラッグが重複していれば失敗します。
	Create(ctx context.Context, c *entity.Category) (*entity.Category, error)
	// Update は指定されたフィールドだけを更新します。
	Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error)
	// Delete はカテゴリを削除し、存在したかどうかを返します。
	Delete(ctx context.Context, id string) (bool, error)
}

// CategoryHandler は /categories 配下のHTTPリクエストを処理します。
type CategoryHandler struct {
	uc CategoryUsecase
}

// NewCategoryHandler は新しい CategoryHandler を作成します。
func NewCategoryHandler(uc CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List はカテゴリ一覧APIエンドポイントを処理します。
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.uc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryList(cats))
}

// Get はカテゴリ取得APIエンドポイントを処理します。
// - 不正な形式のIDも存在しないIDと同じく404を返却
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.uc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryRes(cat))
}

// GetBySlug はスラッグによるカテゴリ取得APIエンドポイントを処理します。
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.uc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryRes(cat))
}

// Create はカテゴリ作成APIエンドポイントを処理します。
// - リクエストJSONをCreateCategoryReqにバインド
// - バリデーションエラー時は400を返却
// - スラッグ重複時は409を返却
// - 成功時は201を返却
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	cat, err := h.uc.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	slog.Info("category created", "category_id", cat.ID, "slug", cat.Slug)
	c.JSON(http.StatusCreated, dto.NewCategoryRes(cat))
}

// Update はカテゴリ部分更新APIエンドポイントを処理します。
// - 対象が存在しない場合、更新するフィールドがない場合はどちらも404を返却
// - 別カテゴリのスラッグへの変更は409を返却
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	cat, err := h.uc.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		msg := ""
		if errors.Is(err, apperr.ErrNotFound) {
			msg = "category not found or no fields to update"
		}
		respond.Error(c, err, msg)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryRes(cat))
}

// Delete はカテゴリ削除APIエンドポイントを処理します。
// - 削除できた場合は204、存在しない場合は404を返却
// - 参照しているコンテンツは変更しない
func (h *CategoryHandler) Delete(c *gin.Context) {
	ok, err := h.uc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	if !ok {
		respond.Error(c, apperr.ErrNotFound, "category not found")
		return
	}
	c.Status(http.StatusNoContent)
}
