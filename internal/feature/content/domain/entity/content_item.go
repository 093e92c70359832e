// Package entity defines the domain entities for the content feature.
package entity

import (
	"slices"
	"time"
)

// ContentItem is a published piece of content.
// CategoryID and AuthorID are loose references; nothing checks that they resolve.
type ContentItem struct {
	ID          string
	Title       string
	Description string
	CategoryID  *string
	AuthorID    *string
	ImageURL    *string
	Tags        []string
	CreatedAt   time.Time
}

// ContentPatch carries the fields of a partial update.
// A nil field leaves the stored value unchanged.
type ContentPatch struct {
	Title       *string
	Description *string
	CategoryID  *string
	AuthorID    *string
	ImageURL    *string
	Tags        *[]string
}

// IsEmpty reports whether the patch would change nothing.
func (p ContentPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.CategoryID == nil &&
		p.AuthorID == nil && p.ImageURL == nil && p.Tags == nil
}

// Apply copies the non-nil fields of p onto c.
func (p ContentPatch) Apply(c *ContentItem) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.CategoryID != nil {
		c.CategoryID = clone(p.CategoryID)
	}
	if p.AuthorID != nil {
		c.AuthorID = clone(p.AuthorID)
	}
	if p.ImageURL != nil {
		c.ImageURL = clone(p.ImageURL)
	}
	if p.Tags != nil {
		c.Tags = slices.Clone(*p.Tags)
		if c.Tags == nil {
			c.Tags = []string{}
		}
	}
}

func clone(s *string) *string {
	v := *s
	return &v
}
