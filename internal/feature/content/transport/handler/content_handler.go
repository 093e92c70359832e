package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/feature/content/domain/entity"
	"cms_backend/internal/feature/content/transport/http/dto"
	"cms_backend/internal/feature/content/usecase"
	"cms_backend/internal/platform/http/respond"
	"cms_backend/internal/shared/apperr"
)

// ContentUsecase はコンテンツ操作のユースケースを定義します。
// インターフェースはコンシューマー（handler）側で定義します。
type ContentUsecase interface {
	// List はフィルタに一致するコンテンツを新しい順に返します。
	List(ctx context.Context, f usecase.ListFilter) ([]entity.ContentItem, error)
	// GetByID は ID でコンテンツを1件取得します。
	GetByID(ctx context.Context, id string) (*entity.ContentItem, error)
	// Create はコンテンツを作成し、採番済みのものを返します。
	Create(ctx context.Context, item *entity.ContentItem) (*entity.ContentItem, error)
	// Update は指定されたフィールドだけを更新します。
	Update(ctx context.Context, id string, patch entity.ContentPatch) (*entity.ContentItem, error)
	// Delete はコンテンツを削除し、存在したかどうかを返します。
	Delete(ctx context.Context, id string) (bool, error)
}

// ContentHandler は /content 配下のHTTPリクエストを処理します。
type ContentHandler struct {
	uc ContentUsecase
}

// NewContentHandler は新しい ContentHandler を作成します。
func NewContentHandler(uc ContentUsecase) *ContentHandler {
	return &ContentHandler{uc: uc}
}

// List は category / search / limit クエリで絞り込んだコンテンツを新しい順に返します。
func (h *ContentHandler) List(c *gin.Context) {
	var q dto.ListContentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BindError(c, err)
		return
	}
	items, err := h.uc.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewContentList(items))
}

// Get はコンテンツ取得APIエンドポイントを処理します。
// - 不正な形式のIDも存在しないIDと同じく404を返却
func (h *ContentHandler) Get(c *gin.Context) {
	item, err := h.uc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.NewContentRes(item))
}

// Create はコンテンツ作成APIエンドポイントを処理します。
// - リクエストJSONをCreateContentReqにバインド
// - バリデーションエラー時は400を返却
// - 成功時は201と作成したコンテンツを返却
func (h *ContentHandler) Create(c *gin.Context) {
	var req dto.CreateContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	item, err := h.uc.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	slog.Info("content item created", "content_id", item.ID)
	c.JSON(http.StatusCreated, dto.NewContentRes(item))
}

// Update はコンテンツ部分更新APIエンドポイントを処理します。
// - null または省略されたフィールドは変更しない
// - 対象が存在しない場合、更新するフィールドがない場合はどちらも404を返却
func (h *ContentHandler) Update(c *gin.Context) {
	var req dto.UpdateContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	item, err := h.uc.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		msg := ""
		if errors.Is(err, apperr.ErrNotFound) {
			msg = "content item not found or no fields to update"
		}
		respond.Error(c, err, msg)
		return
	}
	c.JSON(http.StatusOK, dto.NewContentRes(item))
}

// Delete はコンテンツ削除APIエンドポイントを処理します。
// - 削除できた場合は204、存在しない場合は404を返却
func (h *ContentHandler) Delete(c *gin.Context) {
	ok, err := h.uc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}
	if !ok {
		respond.Error(c, apperr.ErrNotFound, "content item not found")
		return
	}
	c.Status(http.StatusNoContent)
}
