// Package jwtmw issues and validates signed bearer tokens and provides
// the Gin middleware that guards authenticated routes.
package jwtmw

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// DefaultAlgorithm is the signing algorithm used when none is configured.
const DefaultAlgorithm = "HS256"

// iat and exp carry milliseconds so a token expires at issue+ttl rather
// than at the whole second before it.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// Claims is the payload embedded in every access token.
// Subject carries the user's email, ID carries the token identifier (jti).
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Option customises a Generator or Validator.
type Option func(*keyConfig)

type keyConfig struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

func newKeyConfig(secret string, opts []Option) keyConfig {
	kc := keyConfig{
		secret: []byte(secret),
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&kc)
	}
	return kc
}

// WithMethod sets the HMAC signing method.
func WithMethod(m *jwt.SigningMethodHMAC) Option {
	return func(kc *keyConfig) {
		if m != nil {
			kc.method = m
		}
	}
}

// WithClock replaces time.Now, mainly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(kc *keyConfig) {
		if now != nil {
			kc.now = now
		}
	}
}

// ParseAlgorithm resolves an algorithm name to an HMAC signing method.
// Only HS256, HS384 and HS512 are accepted.
func ParseAlgorithm(name string) (*jwt.SigningMethodHMAC, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	m, ok := jwt.GetSigningMethod(strings.ToUpper(name)).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", name)
	}
	return m, nil
}

// Generator signs access tokens.
type Generator struct {
	keyConfig
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration, opts ...Option) *Generator {
	return &Generator{
		keyConfig:  newKeyConfig(secret, opts),
		expiration: expiration,
	}
}

// Expiration returns the lifetime applied by GenerateToken.
func (g *Generator) Expiration() time.Duration {
	return g.expiration
}

// Issue signs claims with an absolute expiry of now+ttl.
// IssuedAt and ExpiresAt are always overwritten; a token identifier is
// assigned when the claims carry none.
func (g *Generator) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := g.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.ID == "" {
		claims.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	}

	token := jwt.NewWithClaims(g.method, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GenerateToken creates a signed access token for the given user.
func (g *Generator) GenerateToken(userID, email string) (string, error) {
	return g.Issue(Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{Subject: email},
	}, g.expiration)
}
