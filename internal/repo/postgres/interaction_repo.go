package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

// Append writes one ledger entry. Entries are immutable; nothing updates or
// reorders them afterwards.
func (r *InteractionRepo) Append(ctx context.Context, tx pgx.Tx, matchID, actorUserID int64, action enums.InteractionAction, now time.Time) (model.Interaction, error) {
	if matchID <= 0 || actorUserID <= 0 || action == "" {
		return model.Interaction{}, fmt.Errorf("invalid interaction payload")
	}
	if tx == nil {
		return model.Interaction{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var (
		rec    model.Interaction
		stored string
	)
	err := tx.QueryRow(ctx, `
INSERT INTO interactions (
	match_id,
	actor_user_id,
	action,
	created_at
) VALUES ($1, $2, $3, $4)
RETURNING id, match_id, actor_user_id, action, created_at
`, matchID, actorUserID, string(action), now.UTC()).Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.ActorUserID,
		&stored,
		&rec.CreatedAt,
	)
	if err != nil {
		return model.Interaction{}, fmt.Errorf("append interaction: %w", err)
	}

	rec.Action = enums.InteractionAction(stored)
	return rec, nil
}

// ListByMatch returns the ledger in append order (insertion order breaks
// timestamp ties).
func (r *InteractionRepo) ListByMatch(ctx context.Context, matchID int64, limit int) ([]model.Interaction, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("invalid match id")
	}
	if limit <= 0 {
		limit = 200
	}
	if r.pool == nil {
		return []model.Interaction{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, match_id, actor_user_id, action, created_at
FROM interactions
WHERE match_id = $1
ORDER BY id ASC
LIMIT $2
`, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	items := make([]model.Interaction, 0, limit)
	for rows.Next() {
		var (
			rec    model.Interaction
			action string
		)
		if err := rows.Scan(&rec.ID, &rec.MatchID, &rec.ActorUserID, &action, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		rec.Action = enums.InteractionAction(action)
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate interactions: %w", rows.Err())
	}

	return items, nil
}

// DeleteByMatch removes a match's whole ledger. Only the rewind path calls
// this, right before the match row itself is deleted.
func (r *InteractionRepo) DeleteByMatch(ctx context.Context, tx pgx.Tx, matchID int64) error {
	if matchID <= 0 {
		return fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM interactions
WHERE match_id = $1
`, matchID); err != nil {
		return fmt.Errorf("delete interactions: %w", err)
	}
	return nil
}
