package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

// GetPrimaryKeys returns each user's primary photo object key. Users without
// photos are absent from the map.
func (r *PhotoRepo) GetPrimaryKeys(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	if len(userIDs) == 0 {
		return map[int64]string{}, nil
	}
	if r.pool == nil {
		return map[int64]string{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT ON (user_id) user_id, object_key
FROM photos
WHERE user_id = ANY($1)
ORDER BY user_id, is_primary DESC, position ASC, id ASC
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list primary photos: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]string, len(userIDs))
	for rows.Next() {
		var (
			userID int64
			key    string
		)
		if err := rows.Scan(&userID, &key); err != nil {
			return nil, fmt.Errorf("scan primary photo: %w", err)
		}
		out[userID] = key
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate primary photos: %w", rows.Err())
	}

	return out, nil
}
