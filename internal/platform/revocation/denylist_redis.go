// Package revocation keeps a denylist of access-token identifiers so that
// logged-out tokens are rejected before their natural expiry.
package revocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenylistRedis stores revoked token identifiers in Redis.
// Each entry expires together with the token it revokes.
type DenylistRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewDenylistRedis creates a new DenylistRedis instance.
func NewDenylistRedis(client *redis.Client, prefix string) *DenylistRedis {
	if prefix == "" {
		prefix = "revoked"
	}
	return &DenylistRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// key returns the Redis key for a token identifier.
func (d *DenylistRedis) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", d.prefix, tokenID)
}

// Revoke denylists tokenID until the given expiry.
// Tokens that have already expired need no entry.
func (d *DenylistRedis) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID is on the denylist.
func (d *DenylistRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}

// Disabled is used when no Redis is configured: nothing is ever revoked.
type Disabled struct{}

// Revoke logs that revocation is unavailable and succeeds.
func (Disabled) Revoke(ctx context.Context, tokenID string, _ time.Time) error {
	slog.WarnContext(ctx, "token revocation is disabled; token stays valid until expiry", "token_id", tokenID)
	return nil
}

// IsRevoked always reports false.
func (Disabled) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}
