package postgres

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

func (r *rankingRepository) Top(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	query := `SELECT id, name, avatar_url, balance FROM users ORDER BY balance DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.RankingEntry{}
	for rows.Next() {
		var e model.RankingEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.AvatarURL, &e.Balance); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
