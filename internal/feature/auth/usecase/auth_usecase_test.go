package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms_backend/internal/feature/auth/domain/entity"
	"cms_backend/internal/platform/password"
	"cms_backend/internal/shared/apperr"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "65f1a2b3c4d5e6f7a8b9c0d1"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID, email string) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

// mockRevoker is a mock implementation of the TokenRevoker interface.
type mockRevoker struct {
	RevokeFunc func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (m *mockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, expiresAt)
	}
	return nil
}

var hasher = password.NewBcryptHasher(4)

func newTestUsecase(repo UserRepository, tokens TokenIssuer, revoker TokenRevoker) *authUsecase {
	if tokens == nil {
		tokens = &mockTokenIssuer{}
	}
	if revoker == nil {
		revoker = &mockRevoker{}
	}
	uc := NewAuthUsecase(repo, hasher, tokens, revoker)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.UTC) }
	return uc
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Parallel()

	t.Run("successful registration", func(t *testing.T) {
		t.Parallel()

		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(_ context.Context, user *entity.User) error {
				stored = user
				user.ID = "65f1a2b3c4d5e6f7a8b9c0d1"
				return nil
			},
		}

		user, err := newTestUsecase(repo, nil, nil).Register(context.Background(), "a@example.com", "password123", "Ada")
		require.NoError(t, err)

		assert.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", user.ID)
		assert.Equal(t, "a@example.com", user.Email)
		assert.Equal(t, "Ada", user.FullName)
		assert.True(t, user.IsActive)
		assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 123000000, time.UTC), user.CreatedAt)
		assert.NotEqual(t, "password123", stored.HashedPassword, "password must be hashed")
		assert.True(t, hasher.Verify("password123", stored.HashedPassword))
	})

	t.Run("duplicate email from pre-check", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: "x", Email: email}, nil
			},
			CreateFunc: func(context.Context, *entity.User) error {
				t.Error("Create must not be called")
				return nil
			},
		}

		_, err := newTestUsecase(repo, nil, nil).Register(context.Background(), "a@example.com", "password123", "Ada")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("duplicate email from store constraint", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error { return ErrEmailAlreadyExists },
		}

		_, err := newTestUsecase(repo, nil, nil).Register(context.Background(), "a@example.com", "password123", "Ada")
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("email comparison is exact", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
				if email == "A@example.com" {
					return &entity.User{Email: email}, nil
				}
				return nil, ErrUserNotFound
			},
		}

		_, err := newTestUsecase(repo, nil, nil).Register(context.Background(), "a@example.com", "password123", "Ada")
		assert.NoError(t, err)
	})

	t.Run("password length rules", func(t *testing.T) {
		t.Parallel()

		uc := newTestUsecase(&mockUserRepository{}, nil, nil)

		_, err := uc.Register(context.Background(), "a@example.com", "short", "Ada")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.ErrorIs(t, err, apperr.ErrValidation)

		_, err = uc.Register(context.Background(), "a@example.com", strings.Repeat("x", 73), "Ada")
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})

	t.Run("lookup failure is not a conflict", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database error")
		repo := &mockUserRepository{
			FindByEmailFunc: func(context.Context, string) (*entity.User, error) { return nil, dbErr },
		}

		_, err := newTestUsecase(repo, nil, nil).Register(context.Background(), "a@example.com", "password123", "Ada")
		assert.ErrorIs(t, err, dbErr)
		assert.False(t, apperr.IsDomain(err))
	})
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	testUser := &entity.User{ID: "65f1a2b3c4d5e6f7a8b9c0d1", Email: "test@example.com", HashedPassword: hash, FullName: "Test"}

	repo := &mockUserRepository{
		FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
			if email == testUser.Email {
				return testUser, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := newTestUsecase(repo, nil, nil)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "test@example.com", password: "password123"},
		{name: "wrong password", email: "test@example.com", password: "wrong-password", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "password123", wantErr: ErrInvalidCredentials},
		{name: "case differs", email: "TEST@example.com", password: "password123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := uc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Nil(t, user)
				// unknown email and wrong password are indistinguishable
				assert.Equal(t, tt.wantErr, err)
				assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUser, user)
		})
	}

	t.Run("store failure is internal", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database error")
		uc := newTestUsecase(&mockUserRepository{
			FindByEmailFunc: func(context.Context, string) (*entity.User, error) { return nil, dbErr },
		}, nil, nil)

		_, err := uc.Authenticate(context.Background(), "test@example.com", "password123")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Parallel()

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	testUser := &entity.User{ID: "65f1a2b3c4d5e6f7a8b9c0d1", Email: "test@example.com", HashedPassword: hash}
	repo := &mockUserRepository{
		FindByEmailFunc: func(context.Context, string) (*entity.User, error) { return testUser, nil },
	}

	t.Run("successful login", func(t *testing.T) {
		t.Parallel()

		tokens := &mockTokenIssuer{
			GenerateTokenFunc: func(userID, email string) (string, error) {
				assert.Equal(t, testUser.ID, userID)
				assert.Equal(t, testUser.Email, email)
				return "signed-token", nil
			},
		}

		token, user, err := newTestUsecase(repo, tokens, nil).Login(context.Background(), "test@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, testUser, user)
	})

	t.Run("bad password issues no token", func(t *testing.T) {
		t.Parallel()

		tokens := &mockTokenIssuer{
			GenerateTokenFunc: func(string, string) (string, error) {
				t.Error("GenerateToken must not be called")
				return "", nil
			},
		}

		token, _, err := newTestUsecase(repo, tokens, nil).Login(context.Background(), "test@example.com", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("token generation failure", func(t *testing.T) {
		t.Parallel()

		tokens := &mockTokenIssuer{
			GenerateTokenFunc: func(string, string) (string, error) { return "", errors.New("sign failed") },
		}

		_, _, err := newTestUsecase(repo, tokens, nil).Login(context.Background(), "test@example.com", "password123")
		require.Error(t, err)
		assert.False(t, apperr.IsDomain(err))
	})
}

func TestAuthUsecase_LookupByEmail(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&mockUserRepository{}, nil, nil)

	_, err := uc.LookupByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAuthUsecase_Logout(t *testing.T) {
	t.Parallel()

	exp := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("revokes token id", func(t *testing.T) {
		t.Parallel()

		var gotID string
		var gotExp time.Time
		revoker := &mockRevoker{
			RevokeFunc: func(_ context.Context, tokenID string, expiresAt time.Time) error {
				gotID, gotExp = tokenID, expiresAt
				return nil
			},
		}

		require.NoError(t, newTestUsecase(&mockUserRepository{}, nil, revoker).Logout(context.Background(), "01HX", exp))
		assert.Equal(t, "01HX", gotID)
		assert.Equal(t, exp, gotExp)
	})

	t.Run("empty token id is a no-op", func(t *testing.T) {
		t.Parallel()

		revoker := &mockRevoker{
			RevokeFunc: func(context.Context, string, time.Time) error {
				t.Error("Revoke must not be called")
				return nil
			},
		}

		assert.NoError(t, newTestUsecase(&mockUserRepository{}, nil, revoker).Logout(context.Background(), "", exp))
	})

	t.Run("revoker failure", func(t *testing.T) {
		t.Parallel()

		revoker := &mockRevoker{
			RevokeFunc: func(context.Context, string, time.Time) error { return errors.New("redis down") },
		}

		err := newTestUsecase(&mockUserRepository{}, nil, revoker).Logout(context.Background(), "01HX", exp)
		assert.Error(t, err)
	})
}
