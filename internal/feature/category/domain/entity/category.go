// Package entity defines the domain entities for the category feature.
package entity

// Category groups content items. Slug is unique across all categories.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description *string
}

// CategoryPatch carries the fields of a partial update.
// A nil field leaves the stored value unchanged; there is no way to clear a field.
type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

// IsEmpty reports whether the patch would change nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil
}

// Apply copies the non-nil fields of p onto c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
}
