package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cms_backend/internal/feature/auth/domain/entity"
	"cms_backend/internal/platform/password"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// dummyHash は未登録メールアドレスのときに比較するハッシュで、
	// どちらの失敗経路でも bcrypt 比較が1回になる。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create はユーザーを保存しIDを採番します。
	// メールアドレス重複をストアが拒否した場合は ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスが完全一致するユーザーを返します。なければ ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を行います。
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer は署名付きアクセストークンを発行します。
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

// TokenRevoker はトークンIDを本来の有効期限まで失効済みとして記録します。
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users   UserRepository
	hasher  PasswordHasher
	tokens  TokenIssuer
	revoker TokenRevoker
	now     func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, revoker TokenRevoker) *authUsecase {
	return &authUsecase{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
		now:     time.Now,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > password.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Register はパスワードをハッシュ化してユーザーを作成します。
// 事前チェックで重複を409にし、同時登録はストアのユニークインデックスで弾きます。
func (u *authUsecase) Register(ctx context.Context, email, password, fullName string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:          email,
		HashedPassword: hashed,
		FullName:       fullName,
		IsActive:       true,
		CreatedAt:      u.now().UTC().Truncate(time.Millisecond),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate はメールアドレスとパスワードが一致すればユーザーを返します。
// 未登録メールアドレスもパスワード誤りも ErrInvalidCredentials を返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.HashedPassword
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	ok := u.hasher.Verify(password, passwordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LookupByEmail はメールアドレスが完全一致するユーザーを返します。
func (u *authUsecase) LookupByEmail(ctx context.Context, email string) (*entity.User, error) {
	return u.users.FindByEmail(ctx, email)
}

// Login はユーザーを認証しアクセストークンを発行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Logout は tokenID のトークンを expiresAt まで失効させます。
func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	if err := u.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
