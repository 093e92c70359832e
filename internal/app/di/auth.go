package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	jwtmw "cms_backend/internal/platform/jwt"
	"cms_backend/internal/platform/config"
	"cms_backend/internal/platform/revocation"
)

// RevocationStore denylists token identifiers and answers lookups for the middleware.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewRevocationStore returns a Redis-backed denylist when Redis is available.
// Otherwise revocation is disabled and tokens stay valid until they expire.
func NewRevocationStore(rdb *redis.Client) RevocationStore {
	if rdb != nil {
		return revocation.NewDenylistRedis(rdb, "revoked")
	}
	return revocation.Disabled{}
}

// NewTokens builds the signer and verifier for the configured algorithm.
func NewTokens(cfg config.AuthConfig) (*jwtmw.Generator, *jwtmw.Validator, error) {
	method, err := jwtmw.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	gen := jwtmw.NewGenerator(cfg.SecretKey, cfg.AccessTokenTTL, jwtmw.WithMethod(method))
	val := jwtmw.NewValidator(cfg.SecretKey, jwtmw.WithMethod(method))
	return gen, val, nil
}
