// Package dto はcategoryフィーチャーのHTTPリクエスト/レスポンスを定義します。
package dto

import "cms_backend/internal/feature/category/domain/entity"

// CreateCategoryReq は POST /categories のリクエストボディです。
type CreateCategoryReq struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Slug        string  `json:"slug" binding:"required,min=1,max=100,slug"`
	Description *string `json:"description"`
}

// UpdateCategoryReq は PUT /categories/{id} のリクエストボディです。
// 省略または null のフィールドは変更しません。
type UpdateCategoryReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=100,slug"`
	Description *string `json:"description"`
}

// CategoryRes はクライアントに返すカテゴリです。
type CategoryRes struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// ToEntity はエンティティに変換します。
func (r CreateCategoryReq) ToEntity() *entity.Category {
	return &entity.Category{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

// ToPatch は部分更新用のパッチに変換します。
func (r UpdateCategoryReq) ToPatch() entity.CategoryPatch {
	return entity.CategoryPatch{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

// NewCategoryRes はエンティティをレスポンスに変換します。
func NewCategoryRes(c *entity.Category) CategoryRes {
	return CategoryRes{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

// NewCategoryList は一覧をレスポンスに変換します。
func NewCategoryList(cs []entity.Category) []CategoryRes {
	out := make([]CategoryRes, 0, len(cs))
	for i := range cs {
		out = append(out, NewCategoryRes(&cs[i]))
	}
	return out
}
