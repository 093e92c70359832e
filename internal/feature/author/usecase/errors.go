package usecase

import "cms_backend/internal/shared/apperr"

// ErrAuthorNotFound is returned for a missing author or a malformed ID.
var ErrAuthorNotFound = apperr.New(apperr.ErrNotFound, "author not found")
