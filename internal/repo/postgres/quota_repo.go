package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrQuotaExceeded = errors.New("daily quota exceeded")

// QuotaRepo tracks per-day super-like usage. Consumption is a single
// conditional upsert so two concurrent super likes cannot both slip under the
// limit.
type QuotaRepo struct {
	pool *pgxpool.Pool
}

func NewQuotaRepo(pool *pgxpool.Pool) *QuotaRepo {
	return &QuotaRepo{pool: pool}
}

// Consume takes one unit for the user's day or returns ErrQuotaExceeded. The
// WHERE clause makes a full counter refuse the update, which surfaces as no
// returned row.
func (r *QuotaRepo) Consume(ctx context.Context, tx pgx.Tx, userID int64, dayKey string, limit int) (int, error) {
	if userID <= 0 || dayKey == "" {
		return 0, fmt.Errorf("invalid quota payload")
	}
	if limit <= 0 {
		return 0, ErrQuotaExceeded
	}
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}

	var used int
	err := tx.QueryRow(ctx, `
INSERT INTO super_like_quotas (user_id, day_key, used, updated_at)
VALUES ($1, $2, 1, NOW())
ON CONFLICT (user_id, day_key) DO UPDATE
SET used = super_like_quotas.used + 1, updated_at = NOW()
WHERE super_like_quotas.used < $3
RETURNING used
`, userID, dayKey, limit).Scan(&used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrQuotaExceeded
		}
		return 0, fmt.Errorf("consume super like quota: %w", err)
	}

	return used, nil
}

// Refund gives a unit back after a rewound super like. The counter never
// drops below zero.
func (r *QuotaRepo) Refund(ctx context.Context, tx pgx.Tx, userID int64, dayKey string) error {
	if userID <= 0 || dayKey == "" {
		return fmt.Errorf("invalid quota payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
UPDATE super_like_quotas
SET used = GREATEST(used - 1, 0), updated_at = NOW()
WHERE user_id = $1 AND day_key = $2
`, userID, dayKey); err != nil {
		return fmt.Errorf("refund super like quota: %w", err)
	}
	return nil
}

func (r *QuotaRepo) GetUsed(ctx context.Context, userID int64, dayKey string) (int, error) {
	if userID <= 0 || dayKey == "" {
		return 0, fmt.Errorf("invalid quota payload")
	}
	if r.pool == nil {
		return 0, nil
	}

	var used int
	err := r.pool.QueryRow(ctx, `
SELECT used
FROM super_like_quotas
WHERE user_id = $1 AND day_key = $2
`, userID, dayKey).Scan(&used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get super like quota: %w", err)
	}

	return used, nil
}
