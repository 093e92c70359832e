package usecase

import "cms_backend/internal/shared/apperr"

// ErrContentNotFound is returned for a missing item, a malformed ID,
// or an update that carries no fields.
var ErrContentNotFound = apperr.New(apperr.ErrNotFound, "content item not found")
