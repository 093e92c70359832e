package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestCategoryPatch(t *testing.T) {
	t.Parallel()

	assert.True(t, CategoryPatch{}.IsEmpty())
	assert.False(t, CategoryPatch{Description: ptr("")}.IsEmpty())

	c := Category{ID: "id", Name: "Essays", Slug: "essays", Description: ptr("long form")}
	CategoryPatch{Name: ptr("Notes")}.Apply(&c)

	assert.Equal(t, Category{ID: "id", Name: "Notes", Slug: "essays", Description: ptr("long form")}, c)
}
