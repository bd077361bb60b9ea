package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/redis"
)

func newTestLimiter(t *testing.T, perMinute, per10Sec int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLimiter(redrepo.NewRateRepo(client), perMinute, per10Sec), mr
}

func TestAllowActionUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 10, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		retryAfter, allowed, err := limiter.AllowAction(ctx, 42)
		if err != nil {
			t.Fatalf("allow action: %v", err)
		}
		if !allowed {
			t.Fatalf("action %d must be allowed", i+1)
		}
		if retryAfter != 0 {
			t.Fatalf("allowed action must not carry a retry-after, got %d", retryAfter)
		}
	}
}

func TestAllowActionDeniesOverBurstLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 100, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, allowed, err := limiter.AllowAction(ctx, 42); err != nil || !allowed {
			t.Fatalf("warmup action %d: allowed=%v err=%v", i+1, allowed, err)
		}
	}

	retryAfter, allowed, err := limiter.AllowAction(ctx, 42)
	if err != nil {
		t.Fatalf("allow action: %v", err)
	}
	if allowed {
		t.Fatalf("third action inside the burst window must be denied")
	}
	if retryAfter <= 0 || retryAfter > 10 {
		t.Fatalf("unexpected retry-after: %d", retryAfter)
	}
}

func TestAllowActionRecoversAfterWindow(t *testing.T) {
	limiter, mr := newTestLimiter(t, 100, 2)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, _ = limiter.AllowAction(ctx, 42)
	}

	mr.FastForward(11 * time.Second)

	_, allowed, err := limiter.AllowAction(ctx, 42)
	if err != nil {
		t.Fatalf("allow action: %v", err)
	}
	if !allowed {
		t.Fatalf("action must be allowed after the window expires")
	}
}

func TestAllowActionIsolatesUsers(t *testing.T) {
	limiter, _ := newTestLimiter(t, 100, 1)
	ctx := context.Background()

	if _, allowed, err := limiter.AllowAction(ctx, 1); err != nil || !allowed {
		t.Fatalf("first user action: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowAction(ctx, 1); err != nil || allowed {
		t.Fatalf("first user second action must be denied")
	}
	if _, allowed, err := limiter.AllowAction(ctx, 2); err != nil || !allowed {
		t.Fatalf("second user must not inherit the first user's window")
	}
}

func TestRetryAfterDoesNotConsume(t *testing.T) {
	limiter, _ := newTestLimiter(t, 100, 2)
	ctx := context.Background()

	if _, err := limiter.RetryAfter(ctx, 42); err != nil {
		t.Fatalf("retry after: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, allowed, err := limiter.AllowAction(ctx, 42); err != nil || !allowed {
			t.Fatalf("action %d must be allowed despite the earlier read", i+1)
		}
	}

	retryAfter, err := limiter.RetryAfter(ctx, 42)
	if err != nil {
		t.Fatalf("retry after: %v", err)
	}
	if retryAfter <= 0 {
		t.Fatalf("saturated window must report a positive retry-after")
	}
}

func TestAllowActionRejectsInvalidUser(t *testing.T) {
	limiter, _ := newTestLimiter(t, 10, 5)

	if _, _, err := limiter.AllowAction(context.Background(), 0); err == nil {
		t.Fatalf("expected an error for an invalid user id")
	}
}
