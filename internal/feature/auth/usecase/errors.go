// Package usecase implements the business logic for the auth feature.
package usecase

import "cms_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")

	// ErrEmailAlreadyExists is returned when registering an email that is already taken.
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "invalid email or password")

	// ErrPasswordTooShort is returned when a password has fewer than 8 characters.
	ErrPasswordTooShort = apperr.New(apperr.ErrValidation, "password must be at least 8 characters long")

	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = apperr.New(apperr.ErrValidation, "password must be at most 72 bytes long")
)
