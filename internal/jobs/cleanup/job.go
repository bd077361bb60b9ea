package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type matchExpirer interface {
	ExpireUnmessaged(ctx context.Context, now time.Time) (int64, error)
}

// Job retires matched pairs whose conversation TTL ran out before anyone
// sent a message.
type Job struct {
	expirer matchExpirer
	now     func() time.Time
	logger  *zap.Logger
}

func New(expirer matchExpirer, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		expirer: expirer,
		now:     time.Now,
		logger:  logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.expirer == nil {
		return nil
	}

	expired, err := j.expirer.ExpireUnmessaged(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("expire unmessaged matches: %w", err)
	}
	if expired > 0 {
		j.logger.Info("expired unmessaged matches", zap.Int64("count", expired))
	}

	return nil
}

// Start runs the sweep on a ticker until ctx is cancelled.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("cleanup run failed", zap.Error(err))
			}
		}
	}
}
