// Package dto はcontentフィーチャーのHTTPリクエスト/レスポンスを定義します。
package dto

import (
	"time"

	"cms_backend/internal/feature/content/domain/entity"
	"cms_backend/internal/feature/content/usecase"
)

// ListContentQuery は GET /content のクエリパラメータです。limit は1〜100、省略時は50。
type ListContentQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=50" binding:"min=1,max=100"`
}

// CreateContentReq は POST /content のリクエストボディです。
type CreateContentReq struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"required,min=1"`
	CategoryID  *string  `json:"category_id"`
	AuthorID    *string  `json:"author_id"`
	ImageURL    *string  `json:"image_url"`
	Tags        []string `json:"tags"`
}

// UpdateContentReq は PUT /content/{id} のリクエストボディです。
// 省略または null のフィールドは変更しません。
type UpdateContentReq struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description" binding:"omitempty,min=1"`
	CategoryID  *string   `json:"category_id"`
	AuthorID    *string   `json:"author_id"`
	ImageURL    *string   `json:"image_url"`
	Tags        *[]string `json:"tags"`
}

// ContentRes はクライアントに返すコンテンツです。tags は常に配列で返します。
type ContentRes struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	AuthorID    *string   `json:"author_id"`
	ImageURL    *string   `json:"image_url"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToFilter はユースケースのフィルタに変換します。
func (q ListContentQuery) ToFilter() usecase.ListFilter {
	return usecase.ListFilter{Category: q.Category, Search: q.Search, Limit: q.Limit}
}

// ToEntity はエンティティに変換します。tags 省略時は空配列。
func (r CreateContentReq) ToEntity() *entity.ContentItem {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &entity.ContentItem{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		AuthorID:    r.AuthorID,
		ImageURL:    r.ImageURL,
		Tags:        tags,
	}
}

// ToPatch は部分更新用のパッチに変換します。
func (r UpdateContentReq) ToPatch() entity.ContentPatch {
	return entity.ContentPatch{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		AuthorID:    r.AuthorID,
		ImageURL:    r.ImageURL,
		Tags:        r.Tags,
	}
}

// NewContentRes はエンティティをレスポンスに変換します。
func NewContentRes(it *entity.ContentItem) ContentRes {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return ContentRes{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		CategoryID:  it.CategoryID,
		AuthorID:    it.AuthorID,
		ImageURL:    it.ImageURL,
		Tags:        tags,
		CreatedAt:   it.CreatedAt,
	}
}

// NewContentList は一覧をレスポンスに変換します。
func NewContentList(items []entity.ContentItem) []ContentRes {
	out := make([]ContentRes, 0, len(items))
	for i := range items {
		out = append(out, NewContentRes(&items[i]))
	}
	return out
}
