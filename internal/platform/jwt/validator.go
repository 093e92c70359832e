package jwtmw

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"cms_backend/internal/shared/apperr"
)

var (
	// ErrTokenInvalid is returned for malformed tokens and signature failures.
	ErrTokenInvalid = fmt.Errorf("token is malformed or its signature does not verify: %w", apperr.ErrInvalid)

	// ErrTokenExpired is returned once the embedded expiry has passed.
	ErrTokenExpired = fmt.Errorf("token has expired: %w", apperr.ErrUnauthenticated)

	// ErrTokenRevoked is recorded on the gin context by AuthRequired for denylisted tokens.
	ErrTokenRevoked = fmt.Errorf("token has been revoked: %w", apperr.ErrUnauthenticated)
)

// Validator verifies tokens produced by a Generator sharing the same key.
type Validator struct {
	keyConfig
}

// NewValidator creates a Validator for the given secret.
func NewValidator(secret string, opts ...Option) *Validator {
	return &Validator{keyConfig: newKeyConfig(secret, opts)}
}

// Validate parses tokenStr and returns its claims.
// Tokens signed with any other algorithm, or lacking an expiry, are invalid.
func (v *Validator) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
