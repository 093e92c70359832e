// Package entity defines the domain entities for the author feature.
package entity

// Author is a content author.
type Author struct {
	ID        string
	Name      string
	Bio       *string
	AvatarURL *string
}
