package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(context.Context, pgx.Tx) error) error {
	if pool == nil {
		return errors.New("postgres pool is nil")
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// WithTxRetry reruns fn in a fresh transaction when a unique-constraint race
// aborts it. Two users creating the same pair concurrently lose at most once:
// the retry re-reads the winning row and reapplies against it.
func WithTxRetry(ctx context.Context, pool *pgxpool.Pool, attempts int, fn func(context.Context, pgx.Tx) error) error {
	if attempts <= 0 {
		attempts = 2
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = WithTx(ctx, pool, fn)
		if lastErr == nil || !IsUniqueViolation(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
