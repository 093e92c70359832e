package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"cms_backend/internal/feature/category/domain/entity"
)

func ptr(s string) *string { return &s }

func TestUpdateSet(t *testing.T) {
	t.Parallel()

	assert.Empty(t, updateSet(entity.CategoryPatch{}))
	assert.Equal(t,
		bson.D{{Key: "name", Value: "Notes"}, {Key: "description", Value: ""}},
		updateSet(entity.CategoryPatch{Name: ptr("Notes"), Description: ptr("")}),
	)
}
