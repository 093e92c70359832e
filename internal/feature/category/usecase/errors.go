package usecase

import "cms_backend/internal/shared/apperr"

var (
	// ErrCategoryNotFound is returned for a missing category, a malformed ID,
	// or an update that carries no fields.
	ErrCategoryNotFound = apperr.New(apperr.ErrNotFound, "category not found")

	// ErrSlugAlreadyExists is returned when another category already uses the slug.
	ErrSlugAlreadyExists = apperr.New(apperr.ErrConflict, "category slug already exists")
)
