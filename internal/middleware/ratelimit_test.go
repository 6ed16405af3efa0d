package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if _, ok := rl.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d blocked below the limit", i+1)
		}
	}

	retryAfter, ok := rl.Allow("1.2.3.4")
	if ok {
		t.Fatal("request above the limit allowed")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v, want within the window", retryAfter)
	}

	// A different client gets its own bucket.
	if _, ok := rl.Allow("5.6.7.8"); !ok {
		t.Error("unrelated client blocked")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(20*time.Millisecond, 1)
	defer rl.Stop()

	if _, ok := rl.Allow("a"); !ok {
		t.Fatal("first request blocked")
	}
	if _, ok := rl.Allow("a"); ok {
		t.Fatal("second request in window allowed")
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := rl.Allow("a"); !ok {
		t.Error("request after window reset blocked")
	}
}
