// Package ratelimiter はクライアント単位の固定ウィンドウ方式のレートリミッターを提供します。
package ratelimiter

import (
	"sync"
	"time"
)

// maxKeys は保持するキー数の上限です。
// 上限に達したら期限切れのウィンドウを削除し、それでも空かなければ最も古いものを追い出します。
const maxKeys = 10000

// RateLimiter は、キーごとに一定時間あたりの操作回数を制限します。
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
	now      func() time.Time
}

type window struct {
	count int
	start time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow はキーの呼び出しを1回数え、上限内であれば true を返します。
// false の場合、retryAfter は現在のウィンドウの残り時間です。
func (rl *RateLimiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if w == nil || now.Sub(w.start) >= rl.interval {
		if w == nil && len(rl.windows) >= maxKeys {
			rl.sweep(now)
		}
		w = &window{start: now}
		rl.windows[key] = w
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.start)
	}
	return true, 0
}

// sweep は期限切れのウィンドウを削除します。
// 1件も削除できなければ、開始が最も古いウィンドウを1件追い出します。
func (rl *RateLimiter) sweep(now time.Time) {
	var (
		oldestKey   string
		oldestStart time.Time
	)
	for k, w := range rl.windows {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.windows, k)
			continue
		}
		if oldestKey == "" || w.start.Before(oldestStart) {
			oldestKey, oldestStart = k, w.start
		}
	}
	if len(rl.windows) >= maxKeys {
		delete(rl.windows, oldestKey)
	}
}
