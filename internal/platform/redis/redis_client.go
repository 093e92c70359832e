package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Config はRedisの接続設定です。Addr が空ならRedisは使いません。
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient はRedisに接続し疎通確認します。
// Addr が空の場合は (nil, nil) を返し、呼び出し側はRedisなしで動作します。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		slog.InfoContext(ctx, "Redis disabled: no address configured")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "Redis connection failed", "address", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}
