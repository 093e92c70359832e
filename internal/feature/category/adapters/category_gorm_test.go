package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cms_backend/internal/feature/category/domain/entity"
	"cms_backend/internal/feature/category/usecase"
	"cms_backend/internal/platform/db"
	"cms_backend/internal/shared/objectid"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.Config{Driver: "sqlite", DSN: "file::memory:"}, GormModels()...)
	require.NoError(t, err, "failed to initialize test database")
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// repositoryContract exercises the behavior every CategoryRepository must share.
func repositoryContract(t *testing.T, repo usecase.CategoryRepository) {
	ctx := context.Background()

	essays := &entity.Category{Name: "Essays", Slug: "essays", Description: ptr("long form")}
	require.NoError(t, repo.Create(ctx, essays))
	require.True(t, objectid.Valid(essays.ID))

	notes := &entity.Category{Name: "Notes", Slug: "notes"}
	require.NoError(t, repo.Create(ctx, notes))

	// unique slug
	err := repo.Create(ctx, &entity.Category{Name: "Dup", Slug: "essays"})
	assert.ErrorIs(t, err, usecase.ErrSlugAlreadyExists)

	// list ordered by id
	list, err := repo.List(ctx, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, essays.ID, list[0].ID)
	assert.Equal(t, notes.ID, list[1].ID)

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	// lookups
	got, err := repo.FindByID(ctx, essays.ID)
	require.NoError(t, err)
	assert.Equal(t, *essays, *got)

	got, err = repo.FindBySlug(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, notes.ID, got.ID)
	assert.Nil(t, got.Description)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrCategoryNotFound)
	_, err = repo.FindByID(ctx, "not-a-valid-id-format")
	assert.ErrorIs(t, err, usecase.ErrCategoryNotFound)
	_, err = repo.FindByID(ctx, objectid.New())
	assert.ErrorIs(t, err, usecase.ErrCategoryNotFound)

	// partial update leaves other fields alone
	got, err = repo.Update(ctx, essays.ID, entity.CategoryPatch{Name: ptr("Long Essays")})
	require.NoError(t, err)
	assert.Equal(t, entity.Category{ID: essays.ID, Name: "Long Essays", Slug: "essays", Description: ptr("long form")}, *got)

	_, err = repo.Update(ctx, notes.ID, entity.CategoryPatch{Slug: ptr("essays")})
	assert.ErrorIs(t, err, usecase.ErrSlugAlreadyExists)

	_, err = repo.Update(ctx, objectid.New(), entity.CategoryPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, usecase.ErrCategoryNotFound)

	_, err = repo.Update(ctx, essays.ID, entity.CategoryPatch{})
	assert.ErrorIs(t, err, usecase.ErrCategoryNotFound)

	// delete
	ok, err := repo.Delete(ctx, notes.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, notes.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "bogus")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryGorm(t *testing.T) {
	t.Parallel()

	repositoryContract(t, NewCategoryGorm(setupTestDB(t)))
}
