package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type expirerStub struct {
	calls   int
	expired int64
	err     error
	lastAt  time.Time
}

func (s *expirerStub) ExpireUnmessaged(_ context.Context, now time.Time) (int64, error) {
	s.calls++
	s.lastAt = now
	return s.expired, s.err
}

func TestRunSweepsOnce(t *testing.T) {
	expirer := &expirerStub{expired: 3}
	job := New(expirer, zap.NewNop())
	job.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if expirer.calls != 1 {
		t.Fatalf("expected one sweep, got %d", expirer.calls)
	}
	if !expirer.lastAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected sweep time: %v", expirer.lastAt)
	}
}

func TestRunPropagatesStoreError(t *testing.T) {
	expirer := &expirerStub{err: errors.New("boom")}
	job := New(expirer, zap.NewNop())

	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected an error from the store")
	}
}

func TestRunWithoutExpirerIsNoop(t *testing.T) {
	job := New(nil, zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	expirer := &expirerStub{}
	job := New(expirer, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Start did not return after cancellation")
	}
}
