// Package cache はリポジトリインターフェースに Redis のリードスルーキャッシュを被せるデコレーターを提供します。
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL は TTL に0以下が指定されたときに使われます。
const DefaultTTL = 5 * time.Minute

// readThrough は各デコレーターが共有する設定です。rdb が nil ならキャッシュしません。
type readThrough struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

func newReadThrough(rdb *redis.Client, ttl time.Duration, namespace string) readThrough {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return readThrough{rdb: rdb, ttl: ttl, namespace: namespace}
}

// key は namespace の下に各パーツを ":" で連結したキーを返します。
func (c readThrough) key(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.namespace)
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

// load は key のキャッシュ値を返し、なければ fetch を呼んで結果をキャッシュします。
// Redis の障害時は fetch にフォールバックし、fetch のエラーはキャッシュしません。
func load[T any](ctx context.Context, c readThrough, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c.rdb == nil {
		return fetch(ctx)
	}

	// 1) キャッシュを確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたキャッシュは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DBから取得
	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}

	// 3) キャッシュに保存（失敗しても無視）
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate は namespace 配下の全キーを削除します。失敗はログに出すだけです。
func (c readThrough) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed", "namespace", c.namespace, "error", err)
	}
}

// deleteByPattern は SCAN でパターンに一致するキーをすべて削除します。
func (c readThrough) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe はキーの区切り文字や SCAN のパターン文字をエスケープします。
// 異なる入力が同じキーにならないよう、可逆なクエリエスケープを使います。
func safe(s string) string {
	return url.QueryEscape(s)
}
