// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the store-assigned identifier in its string form.
	ID string

	// Email is the address used for authentication.
	// It is unique across all users and compared as an exact string.
	Email string

	// HashedPassword is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	HashedPassword string

	// FullName is the user's display name.
	FullName string

	// IsActive is set on registration and not changed by this service.
	IsActive bool

	// CreatedAt is the timestamp when the user was registered.
	CreatedAt time.Time
}
