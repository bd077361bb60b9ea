package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id,
	COALESCE(gender, ''),
	COALESCE(interested_in, '{}'),
	birthdate,
	last_lat,
	last_lon,
	COALESCE(age_min, 18),
	COALESCE(age_max, 99),
	COALESCE(max_distance_km, 100),
	COALESCE(verified_only, FALSE),
	COALESCE(tier, 'free'),
	is_active,
	is_verified,
	created_at,
	updated_at`

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, ErrUserNotFound
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+userColumns+`
FROM users
WHERE id = $1
`, userID)

	return scanUser(row)
}

func (r *UserRepo) GetByIDs(ctx context.Context, userIDs []int64) (map[int64]*model.User, error) {
	if len(userIDs) == 0 {
		return map[int64]*model.User{}, nil
	}
	if r.pool == nil {
		return map[int64]*model.User{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+userColumns+`
FROM users
WHERE id = ANY($1)
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]*model.User, len(userIDs))
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[user.ID] = user
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate users: %w", rows.Err())
	}

	return out, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u    model.User
		tier string
	)
	err := row.Scan(
		&u.ID,
		&u.Gender,
		&u.InterestedIn,
		&u.Birthdate,
		&u.LastLat,
		&u.LastLon,
		&u.Preferences.AgeMin,
		&u.Preferences.AgeMax,
		&u.Preferences.MaxDistanceKM,
		&u.Preferences.VerifiedOnly,
		&tier,
		&u.IsActive,
		&u.IsVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.Tier = enums.Tier(tier)
	return &u, nil
}
