// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// ErrTooLong is returned by Hash when the password exceeds MaxLength bytes.
var ErrTooLong = errors.New("password exceeds 72 bytes")

// BcryptHasher implements one-way salted password hashing.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxLength {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash.
// A malformed hash is a mismatch, never an error.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
