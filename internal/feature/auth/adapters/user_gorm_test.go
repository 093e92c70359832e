package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cms_backend/internal/feature/auth/domain/entity"
	"cms_backend/internal/feature/auth/usecase"
	"cms_backend/internal/platform/db"
	"cms_backend/internal/shared/objectid"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.Config{Driver: "sqlite", DSN: "file::memory:"}, GormModels()...)
	require.NoError(t, err, "failed to initialize test database")
	t.Cleanup(func() { _ = db.Close(gdb) })

	return gdb
}

func newUser(email string) *entity.User {
	return &entity.User{
		Email:          email,
		HashedPassword: "$2a$04$hash",
		FullName:       "Test User",
		IsActive:       true,
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserGorm_Create(t *testing.T) {
	t.Parallel()

	t.Run("successful user creation", func(t *testing.T) {
		t.Parallel()
		repo := NewUserGorm(setupTestDB(t))

		user := newUser("test@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		assert.True(t, objectid.Valid(user.ID), "ID is not an object id: %q", user.ID)
	})

	t.Run("duplicate email error", func(t *testing.T) {
		t.Parallel()
		repo := NewUserGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), newUser("duplicate@example.com")))
		err := repo.Create(context.Background(), newUser("duplicate@example.com"))

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})

	t.Run("email is case-sensitive", func(t *testing.T) {
		t.Parallel()
		repo := NewUserGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), newUser("a@example.com")))
		assert.NoError(t, repo.Create(context.Background(), newUser("A@example.com")))
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Parallel()

	t.Run("find user by email successfully", func(t *testing.T) {
		t.Parallel()
		repo := NewUserGorm(setupTestDB(t))

		expected := newUser("find@example.com")
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByEmail(context.Background(), "find@example.com")
		require.NoError(t, err)
		assert.Equal(t, expected.ID, found.ID)
		assert.Equal(t, expected.Email, found.Email)
		assert.Equal(t, expected.HashedPassword, found.HashedPassword)
		assert.Equal(t, expected.FullName, found.FullName)
		assert.True(t, found.IsActive)
		assert.True(t, expected.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("email not found error", func(t *testing.T) {
		t.Parallel()
		repo := NewUserGorm(setupTestDB(t))

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")
		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
