package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"shopeasy/pkg/errors"
	"shopeasy/pkg/response"
)

// tokenBucket refills lazily on each Allow call.
type tokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *tokenBucket {
	return &tokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	refills := int(elapsed/tb.refillTime) * tb.refillRate
	if refills > 0 {
		tb.tokens += refills
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

// RateLimiter throttles write traffic per user and action. Buckets are
// created on first use and pruned after an hour of inactivity.
type RateLimiter struct {
	buckets map[string]*tokenBucket
	mu      sync.RWMutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*tokenBucket),
	}
}

func (rl *RateLimiter) bucket(userID, action string) *tokenBucket {
	key := userID + ":" + action

	rl.mu.RLock()
	bucket, ok := rl.buckets[key]
	rl.mu.RUnlock()
	if ok {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if bucket, ok = rl.buckets[key]; ok {
		return bucket
	}

	switch action {
	case "cart_write":
		// 30 cart edits per minute
		bucket = newTokenBucket(30, 1, 2*time.Second)
	case "place_order":
		// 6 checkouts per minute
		bucket = newTokenBucket(6, 1, 10*time.Second)
	default:
		bucket = newTokenBucket(20, 1, 3*time.Second)
	}
	rl.buckets[key] = bucket
	return bucket
}

// Limit returns echo middleware gating the route behind the named
// action's bucket. Requests without a uid pass through untouched; the
// auth middleware rejects those on its own.
func (rl *RateLimiter) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get("uid").(string)
			if !ok || userID == "" {
				return next(c)
			}

			allowed, wait := rl.bucket(userID, action).allow()
			if !allowed {
				return response.Error(c, errors.New(
					"RATE_LIMITED",
					fmt.Sprintf("Too many requests, retry in %s", wait.Round(time.Second)),
					429,
					nil,
				))
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > time.Hour {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanup prunes idle buckets every half hour.
func (rl *RateLimiter) StartCleanup() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rl.cleanup()
		}
	}()
}
