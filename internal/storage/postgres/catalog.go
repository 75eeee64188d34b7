package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	questions := campaign.Questions
	if questions == nil {
		questions = []string{}
	}
	const query = `INSERT INTO campaigns (type, title, questions) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.storage.pool.QueryRow(ctx, query, campaign.Type, campaign.Title, questions).
		Scan(&campaign.ID, &campaign.CreatedAt)
}

func (r *campaignRepository) List(ctx context.Context) ([]model.Campaign, error) {
	const query = `SELECT id, type, title, questions, created_at FROM campaigns ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Campaign{}
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Type, &c.Title, &c.Questions, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *rewardRepository) List(ctx context.Context) ([]model.Reward, error) {
	const query = `SELECT id, name, quantity FROM rewards ORDER BY id ASC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Reward{}
	for rows.Next() {
		var rw model.Reward
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.Quantity); err != nil {
			return nil, err
		}
		result = append(result, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceAll swaps the whole reward set atomically.
func (r *rewardRepository) ReplaceAll(ctx context.Context, rewards []model.Reward) ([]model.Reward, error) {
	result := make([]model.Reward, 0, len(rewards))
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM rewards`); err != nil {
			return err
		}
		const insert = `INSERT INTO rewards (name, quantity) VALUES ($1, $2) RETURNING id`
		for _, rw := range rewards {
			item := model.Reward{Name: rw.Name, Quantity: rw.Quantity}
			if err := tx.QueryRow(ctx, insert, rw.Name, rw.Quantity).Scan(&item.ID); err != nil {
				return err
			}
			result = append(result, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
