// Package apperr defines the error kinds shared by every feature.
//
// Feature packages declare their own sentinel errors and wrap one of these
// kinds with %w, so transport code can classify a failure with errors.Is
// without importing the feature that produced it.
package apperr

import "errors"

var (
	// ErrConflict indicates a uniqueness violation (duplicate email, duplicate slug).
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a missing record, a malformed identifier,
	// or an update request that carried no applicable fields.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated indicates bad credentials or an expired or revoked token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalid indicates a token whose signature or format does not verify.
	ErrInvalid = errors.New("invalid")

	// ErrValidation indicates input rejected by a business rule rather than by request binding.
	ErrValidation = errors.New("validation failed")
)

// IsDomain reports whether err belongs to one of the locally produced kinds.
// Anything else is an internal failure.
func IsDomain(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalid) ||
		errors.Is(err, ErrValidation)
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error reading msg that matches kind under errors.Is.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
