package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlockRepo struct {
	pool *pgxpool.Pool
}

func NewBlockRepo(pool *pgxpool.Pool) *BlockRepo {
	return &BlockRepo{pool: pool}
}

// Upsert records a directed block. Re-blocking the same user is a no-op.
func (r *BlockRepo) Upsert(ctx context.Context, tx pgx.Tx, blockerID, blockedID int64, now time.Time) error {
	if blockerID <= 0 || blockedID <= 0 || blockerID == blockedID {
		return fmt.Errorf("invalid block payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO blocks (blocker_id, blocked_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (blocker_id, blocked_id) DO NOTHING
`, blockerID, blockedID, now.UTC()); err != nil {
		return fmt.Errorf("upsert block: %w", err)
	}
	return nil
}

// Exists reports whether either direction of the pair carries a block.
func (r *BlockRepo) Exists(ctx context.Context, userID, otherID int64) (bool, error) {
	if userID <= 0 || otherID <= 0 {
		return false, fmt.Errorf("invalid block lookup")
	}
	if r.pool == nil {
		return false, nil
	}

	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1
	FROM blocks
	WHERE
		(blocker_id = $1 AND blocked_id = $2)
		OR (blocker_id = $2 AND blocked_id = $1)
)
`, userID, otherID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}

	return exists, nil
}
