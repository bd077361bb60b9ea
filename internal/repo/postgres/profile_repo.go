package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	user_id,
	COALESCE(interests, '{}'),
	COALESCE(smoking, ''),
	COALESCE(drinking, ''),
	COALESCE(exercise, ''),
	COALESCE(diet, ''),
	COALESCE(school, ''),
	COALESCE(degree_level, ''),
	COALESCE(goal, ''),
	COALESCE(languages, '[]'::jsonb),
	updated_at`

func (r *ProfileRepo) GetByUser(ctx context.Context, userID int64) (*model.Profile, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, ErrProfileNotFound
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+profileColumns+`
FROM profiles
WHERE user_id = $1
`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUsers loads profiles for the given ids; absent profiles are simply
// missing from the result, which the scorer treats as zero.
func (r *ProfileRepo) GetByUsers(ctx context.Context, userIDs []int64) (map[int64]*model.Profile, error) {
	if len(userIDs) == 0 {
		return map[int64]*model.Profile{}, nil
	}
	if r.pool == nil {
		return map[int64]*model.Profile{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+profileColumns+`
FROM profiles
WHERE user_id = ANY($1)
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]*model.Profile, len(userIDs))
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[profile.UserID] = profile
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}

	return out, nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var (
		p         model.Profile
		smoking   string
		drinking  string
		exercise  string
		diet      string
		goal      string
		languages []byte
	)
	err := row.Scan(
		&p.UserID,
		&p.Interests,
		&smoking,
		&drinking,
		&exercise,
		&diet,
		&p.Education.School,
		&p.Education.DegreeLevel,
		&goal,
		&languages,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.Lifestyle = model.Lifestyle{
		Smoking:  enums.Smoking(smoking),
		Drinking: enums.Drinking(drinking),
		Exercise: enums.Exercise(exercise),
		Diet:     enums.Diet(diet),
	}
	p.Goal = enums.RelationshipGoal(goal)

	if len(languages) > 0 {
		if err := json.Unmarshal(languages, &p.Languages); err != nil {
			return nil, fmt.Errorf("decode profile languages: %w", err)
		}
	}

	return &p, nil
}
