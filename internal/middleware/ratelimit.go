package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter is a fixed-window, per-key request counter. State lives in
// a process-scoped map guarded by a mutex; an explicit sweep goroutine
// evicts expired buckets so the map does not grow with every client
// ever seen.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	window  time.Duration
	max     int
	stop    chan struct{}
}

type rateBucket struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*rateBucket),
		window:  window,
		max:     max,
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop terminates the sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Allow records one request for key. When the limit is exceeded it
// returns false along with the time until the window resets.
func (rl *RateLimiter) Allow(key string) (time.Duration, bool) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.buckets[key]
	if !ok || now.After(entry.resetAt) {
		entry = &rateBucket{resetAt: now.Add(rl.window)}
		rl.buckets[key] = entry
	}

	entry.count++
	if entry.count > rl.max {
		return entry.resetAt.Sub(now), false
	}
	return 0, true
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, entry := range rl.buckets {
				if now.After(entry.resetAt) {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler limits requests per client IP.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retryAfter, ok := rl.Allow(c.IP())
		if !ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds()+1)))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Vượt quá giới hạn yêu cầu, vui lòng thử lại sau.",
			})
		}
		return c.Next()
	}
}
