package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

// CandidateRepo backs the discovery feed. It does the cheap relational
// prefilters in SQL (activity, mutual gender interest, age window, verified
// flag, existing pairs); distance and compatibility ranking happen in the
// service on the survivors.
type CandidateRepo struct {
	pool *pgxpool.Pool
}

func NewCandidateRepo(pool *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{pool: pool}
}

// listCandidatesQuery keeps the feed free of anyone the viewer already shares
// a pair record with, whatever its status. A pending row from a stranger's
// unanswered like is enough to exclude.
const listCandidatesQuery = `
SELECT` + userColumns + `
FROM users u
WHERE
	u.id <> $1
	AND u.is_active = TRUE
	AND u.birthdate IS NOT NULL
	AND u.birthdate BETWEEN $2 AND $3
	AND (cardinality($4::text[]) = 0 OR u.gender = ANY($4::text[]))
	AND (u.interested_in IS NULL OR cardinality(u.interested_in) = 0 OR $5 = ANY(u.interested_in))
	AND ($6 = FALSE OR u.is_verified = TRUE)
	AND NOT EXISTS (
		SELECT 1
		FROM matches m
		WHERE
			m.user_a_id = LEAST($1, u.id)
			AND m.user_b_id = GREATEST($1, u.id)
	)
ORDER BY u.updated_at DESC, u.id DESC
LIMIT $7
`

// ListCandidates returns active users the viewer could still act on.
func (r *CandidateRepo) ListCandidates(ctx context.Context, viewer *model.User, now time.Time, fetchLimit int) ([]*model.User, error) {
	if viewer == nil || viewer.ID <= 0 {
		return nil, fmt.Errorf("invalid viewer")
	}
	if fetchLimit <= 0 {
		fetchLimit = 500
	}
	if r.pool == nil {
		return []*model.User{}, nil
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// Birthdate window for the viewer's age preference. Someone aged exactly
	// age_max still qualifies until the day before their next birthday.
	newestBirth := now.AddDate(-viewer.Preferences.AgeMin, 0, 0)
	oldestBirth := now.AddDate(-viewer.Preferences.AgeMax-1, 0, 1)

	rows, err := r.pool.Query(ctx, listCandidatesQuery,
		viewer.ID,
		oldestBirth,
		newestBirth,
		viewer.InterestedIn,
		viewer.Gender,
		viewer.Preferences.VerifiedOnly,
		fetchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	items := make([]*model.User, 0, fetchLimit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate candidates: %w", rows.Err())
	}

	return items, nil
}
