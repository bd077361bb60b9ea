package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/rules"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

const matchColumns = `
	id,
	user_a_id,
	user_b_id,
	status,
	initiator_id,
	match_type,
	match_score,
	last_action_a,
	last_action_b,
	last_message_at,
	message_count,
	is_active,
	expires_at,
	created_at,
	updated_at`

// CreateOrGet inserts the canonical pair row or, when the pair already
// exists (including a concurrent insert that won the race), locks and
// returns the existing row. The returned row is locked for the rest of the
// transaction either way.
func (r *MatchRepo) CreateOrGet(ctx context.Context, tx pgx.Tx, userID, targetID, initiatorID int64, matchType enums.InteractionAction, score int, now time.Time) (model.Match, bool, error) {
	if userID <= 0 || targetID <= 0 || initiatorID <= 0 {
		return model.Match{}, false, fmt.Errorf("invalid match payload")
	}
	if tx == nil {
		return model.Match{}, false, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	userA, userB := rules.PairKey(userID, targetID)

	var matchID int64
	err := tx.QueryRow(ctx, `
INSERT INTO matches (
	user_a_id,
	user_b_id,
	status,
	initiator_id,
	match_type,
	match_score,
	message_count,
	is_active,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, 0, TRUE, $7, $7)
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING id
`, userA, userB, string(enums.MatchStatusPending), initiatorID, string(matchType), score, now.UTC()).Scan(&matchID)

	created := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, false, fmt.Errorf("create match: %w", err)
		}
		created = false
	}

	match, err := r.GetByPairForUpdate(ctx, tx, userA, userB)
	if err != nil {
		return model.Match{}, false, err
	}
	return match, created, nil
}

func (r *MatchRepo) GetByPairForUpdate(ctx context.Context, tx pgx.Tx, userID, targetID int64) (model.Match, error) {
	if tx == nil {
		return model.Match{}, fmt.Errorf("transaction is required")
	}

	userA, userB := rules.PairKey(userID, targetID)
	row := tx.QueryRow(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
FOR UPDATE
`, userA, userB)

	return scanMatch(row)
}

func (r *MatchRepo) GetByPair(ctx context.Context, userID, targetID int64) (model.Match, error) {
	if r.pool == nil {
		return model.Match{}, ErrMatchNotFound
	}

	userA, userB := rules.PairKey(userID, targetID)
	row := r.pool.QueryRow(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, userA, userB)

	return scanMatch(row)
}

func (r *MatchRepo) GetByID(ctx context.Context, matchID int64) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return model.Match{}, ErrMatchNotFound
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE id = $1
`, matchID)

	return scanMatch(row)
}

// GetLatestInitiatedBy returns the newest match created by the user, locked
// for the rewind transaction.
func (r *MatchRepo) GetLatestInitiatedBy(ctx context.Context, tx pgx.Tx, userID int64) (model.Match, error) {
	if userID <= 0 {
		return model.Match{}, fmt.Errorf("invalid user id")
	}
	if tx == nil {
		return model.Match{}, fmt.Errorf("transaction is required")
	}

	row := tx.QueryRow(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE initiator_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1
FOR UPDATE
`, userID)

	return scanMatch(row)
}

// ApplyTransition persists the state-machine outcome together with the
// refreshed per-member last-action index.
func (r *MatchRepo) ApplyTransition(ctx context.Context, tx pgx.Tx, m model.Match) error {
	if m.ID <= 0 {
		return fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
UPDATE matches
SET
	status = $2,
	is_active = $3,
	expires_at = $4,
	last_action_a = $5,
	last_action_b = $6,
	updated_at = NOW()
WHERE id = $1
`, m.ID, string(m.Status), m.IsActive, m.ExpiresAt, actionPtr(m.LastActionA), actionPtr(m.LastActionB))
	if err != nil {
		return fmt.Errorf("apply match transition: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *MatchRepo) UpdateScore(ctx context.Context, matchID int64, score int) error {
	if matchID <= 0 {
		return fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return ErrMatchNotFound
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches
SET match_score = $2, updated_at = NOW()
WHERE id = $1
`, matchID, score)
	if err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// RecordMessage bumps the conversation counters. The expiry timer is cleared
// once the conversation is used. Only matched records accept messages; the
// caller distinguishes missing from mis-stated via GetByID.
func (r *MatchRepo) RecordMessage(ctx context.Context, matchID int64, at time.Time) (bool, error) {
	if matchID <= 0 {
		return false, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return false, nil
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches
SET
	message_count = message_count + 1,
	last_message_at = $2,
	expires_at = NULL,
	updated_at = NOW()
WHERE id = $1 AND status = 'matched'
`, matchID, at.UTC())
	if err != nil {
		return false, fmt.Errorf("record message stats: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *MatchRepo) ListActiveForUser(ctx context.Context, userID int64, limit int) ([]model.Match, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.Match{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE
	(user_a_id = $1 OR user_b_id = $1)
	AND status = 'matched'
	AND is_active = TRUE
ORDER BY created_at DESC, id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list active matches: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0, limit)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan active match: %w", err)
		}
		items = append(items, match)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate active matches: %w", rows.Err())
	}

	return items, nil
}

func (r *MatchRepo) DeleteByID(ctx context.Context, tx pgx.Tx, matchID int64) error {
	if matchID <= 0 {
		return fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
DELETE FROM matches
WHERE id = $1
`, matchID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// ExpireUnmessaged unmatches matched-but-silent pairs whose timer ran out.
func (r *MatchRepo) ExpireUnmessaged(ctx context.Context, now time.Time) (int64, error) {
	if r.pool == nil {
		return 0, nil
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches
SET
	status = 'unmatched',
	is_active = FALSE,
	expires_at = NULL,
	updated_at = NOW()
WHERE
	status = 'matched'
	AND expires_at IS NOT NULL
	AND expires_at < $1
	AND message_count = 0
`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("expire unmessaged matches: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var (
		m           model.Match
		status      string
		matchType   string
		lastActionA *string
		lastActionB *string
	)
	err := row.Scan(
		&m.ID,
		&m.UserAID,
		&m.UserBID,
		&status,
		&m.InitiatorID,
		&matchType,
		&m.MatchScore,
		&lastActionA,
		&lastActionB,
		&m.LastMessageAt,
		&m.MessageCount,
		&m.IsActive,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("scan match: %w", err)
	}

	m.Status = enums.MatchStatus(status)
	m.MatchType = enums.InteractionAction(matchType)
	if lastActionA != nil {
		action := enums.InteractionAction(*lastActionA)
		m.LastActionA = &action
	}
	if lastActionB != nil {
		action := enums.InteractionAction(*lastActionB)
		m.LastActionB = &action
	}
	return m, nil
}

func actionPtr(action *enums.InteractionAction) *string {
	if action == nil {
		return nil
	}
	value := string(*action)
	return &value
}
