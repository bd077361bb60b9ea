package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Create(ctx context.Context, tx pgx.Tx, reporterID, reportedID int64, reason enums.ReportReason, comment, reference string, now time.Time) (int64, error) {
	if reporterID <= 0 || reportedID <= 0 || reporterID == reportedID {
		return 0, fmt.Errorf("invalid report payload")
	}
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var id int64
	err := tx.QueryRow(ctx, `
INSERT INTO reports (reporter_id, reported_id, reason, comment, reference, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, reporterID, reportedID, string(reason), comment, reference, now.UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}

	return id, nil
}

func (r *ReportRepo) CountAgainst(ctx context.Context, reportedID int64, since time.Time) (int, error) {
	if reportedID <= 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return 0, nil
	}

	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM reports
WHERE reported_id = $1 AND created_at >= $2
`, reportedID, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}

	return count, nil
}
