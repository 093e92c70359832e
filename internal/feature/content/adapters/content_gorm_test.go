package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cms_backend/internal/feature/content/domain/entity"
	"cms_backend/internal/feature/content/usecase"
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

func ptr(s string) *string { return &s }

func ids(items []entity.ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// repositoryContract exercises the behavior every ContentRepository must share.
func repositoryContract(t *testing.T, repo usecase.ContentRepository) {
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	mundane := &entity.ContentItem{
		Title:       "Leaning Into the Mundane",
		Description: "Exploring the beauty in everyday moments",
		CategoryID:  ptr("507f1f77bcf86cd799439011"),
		AuthorID:    ptr("507f1f77bcf86cd799439012"),
		ImageURL:    ptr("https://example.com/image.jpg"),
		Tags:        []string{"philosophy", "mindfulness"},
		CreatedAt:   base,
	}
	tagged := &entity.ContentItem{
		Title:       "Morning coffee",
		Description: "A small ritual",
		Tags:        []string{"MUNDANE-life"},
		CreatedAt:   base.Add(time.Hour),
	}
	other := &entity.ContentItem{
		Title:       "100% literal_match",
		Description: "nothing to see",
		CategoryID:  ptr("507f1f77bcf86cd799439011"),
		Tags:        []string{},
		CreatedAt:   base.Add(2 * time.Hour),
	}
	for _, it := range []*entity.ContentItem{mundane, tagged, other} {
		require.NoError(t, repo.Create(ctx, it))
		require.True(t, objectid.Valid(it.ID))
	}

	// newest first
	list, err := repo.List(ctx, usecase.ListFilter{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID, tagged.ID, mundane.ID}, ids(list))

	list, err = repo.List(ctx, usecase.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, ids(list))

	// search matches title, description or any tag, case-insensitively
	list, err = repo.List(ctx, usecase.ListFilter{Search: "mundane", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{tagged.ID, mundane.ID}, ids(list))

	list, err = repo.List(ctx, usecase.ListFilter{Search: "EVERYDAY", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{mundane.ID}, ids(list))

	// wildcard and regex characters are literal
	list, err = repo.List(ctx, usecase.ListFilter{Search: "0% literal_", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, ids(list))

	list, err = repo.List(ctx, usecase.ListFilter{Search: "_", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, ids(list))

	list, err = repo.List(ctx, usecase.ListFilter{Search: ".*", Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, list)

	// category filter combines with search
	list, err = repo.List(ctx, usecase.ListFilter{Category: "507f1f77bcf86cd799439011", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID, mundane.ID}, ids(list))

	list, err = repo.List(ctx, usecase.ListFilter{Category: "507f1f77bcf86cd799439011", Search: "mundane", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{mundane.ID}, ids(list))

	// lookups
	got, err := repo.FindByID(ctx, mundane.ID)
	require.NoError(t, err)
	assert.Equal(t, mundane.Title, got.Title)
	assert.Equal(t, mundane.Tags, got.Tags)
	assert.Equal(t, *mundane.ImageURL, *got.ImageURL)
	assert.True(t, base.Equal(got.CreatedAt))

	got, err = repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Tags)
	assert.Nil(t, got.AuthorID)

	_, err = repo.FindByID(ctx, "not-a-valid-id-format")
	assert.ErrorIs(t, err, usecase.ErrContentNotFound)
	_, err = repo.FindByID(ctx, objectid.New())
	assert.ErrorIs(t, err, usecase.ErrContentNotFound)

	// partial update changes only the given fields
	got, err = repo.Update(ctx, mundane.ID, entity.ContentPatch{Title: ptr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, mundane.Description, got.Description)
	assert.Equal(t, mundane.Tags, got.Tags)
	assert.Equal(t, *mundane.CategoryID, *got.CategoryID)
	assert.True(t, base.Equal(got.CreatedAt))

	newTags := []string{"slow"}
	got, err = repo.Update(ctx, mundane.ID, entity.ContentPatch{Tags: &newTags})
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, []string{"slow"}, got.Tags)

	stored, err := repo.FindByID(ctx, mundane.ID)
	require.NoError(t, err)
	assert.Equal(t, *got, *stored)

	_, err = repo.Update(ctx, mundane.ID, entity.ContentPatch{})
	assert.ErrorIs(t, err, usecase.ErrContentNotFound)
	_, err = repo.Update(ctx, objectid.New(), entity.ContentPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, usecase.ErrContentNotFound)

	// delete
	ok, err := repo.Delete(ctx, tagged.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, tagged.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "bogus")
	require.NoError(t, err)
	assert.False(t, ok)
}

// searchContract covers tag and text matching that a LIKE over serialized
// tags would get wrong: escaped characters, non-ASCII case and tag boundaries.
func searchContract(t *testing.T, repo usecase.ContentRepository) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	rnd := &entity.ContentItem{Title: "Lab notes", Description: "-", Tags: []string{"R&D", "<b>"}, CreatedAt: base}
	etude := &entity.ContentItem{Title: "Étude in Blue", Description: "Ünïcode", Tags: []string{"ab", "cd"}, CreatedAt: base.Add(time.Minute)}
	for _, it := range []*entity.ContentItem{rnd, etude} {
		require.NoError(t, repo.Create(ctx, it))
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"r&d", []string{rnd.ID}},
		{"<B>", []string{rnd.ID}},
		{"étude", []string{etude.ID}},
		{"ÜNÏ", []string{etude.ID}},
		{"cd", []string{etude.ID}},
		{`b","c`, []string{}},
		{"bc", []string{}},
		{`"ab"`, []string{}},
	}
	for _, tt := range tests {
		list, err := repo.List(ctx, usecase.ListFilter{Search: tt.search, Limit: 50})
		require.NoError(t, err, tt.search)
		assert.Equal(t, tt.want, ids(list), tt.search)
	}
}

func TestContentGorm(t *testing.T) {
	t.Parallel()

	repositoryContract(t, NewContentGorm(setupTestDB(t)))
}

func TestContentGorm_SearchTags(t *testing.T) {
	t.Parallel()

	searchContract(t, NewContentGorm(setupTestDB(t)))
}

// TestContentGorm_SearchPagesThroughBatches は一致が searchBatchSize を超えて散らばっていても
// 新しい順に limit 件を返すことを検証します。
func TestContentGorm_SearchPagesThroughBatches(t *testing.T) {
	t.Parallel()

	repo := NewContentGorm(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	var want []string
	total := searchBatchSize*2 + 10
	for i := 0; i < total; i++ {
		item := &entity.ContentItem{Title: "filler", Description: "-", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if i%50 == 0 {
			item.Tags = []string{"Needle"}
		}
		require.NoError(t, repo.Create(ctx, item))
		if i%50 == 0 {
			want = append([]string{item.ID}, want...)
		}
	}

	list, err := repo.List(ctx, usecase.ListFilter{Search: "needle", Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, want, ids(list))

	list, err = repo.List(ctx, usecase.ListFilter{Search: "needle", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, want[:3], ids(list))
}
