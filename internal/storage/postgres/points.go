package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// Register credits amount and appends the event in one transaction.
// The row lock taken by the UPDATE serializes concurrent clock-ins of one user.
func (r *pointRepository) Register(ctx context.Context, userID string, amount int64, at time.Time) (*model.ClockIn, error) {
	result := model.ClockIn{Event: model.PointEvent{UserID: userID, Amount: amount, RecordedAt: at}}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const credit = `UPDATE users SET balance = balance + $1 WHERE id=$2 RETURNING balance`
		if err := tx.QueryRow(ctx, credit, amount, userID).Scan(&result.Balance); err != nil {
			return notFound(err)
		}

		const insert = `INSERT INTO points (user_id, amount, recorded_at) VALUES ($1, $2, $3) RETURNING id`
		return tx.QueryRow(ctx, insert, userID, amount, at).Scan(&result.Event.ID)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *pointRepository) ListByUser(ctx context.Context, userID string) ([]model.PointEvent, error) {
	const query = `SELECT id, user_id, amount, recorded_at
                   FROM points WHERE user_id=$1 ORDER BY recorded_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.PointEvent{}
	for rows.Next() {
		var ev model.PointEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Amount, &ev.RecordedAt); err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *pointRepository) Balance(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT balance FROM users WHERE id=$1`
	var balance int64
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return 0, notFound(err)
	}
	return balance, nil
}

// ResetBalances zeroes every balance and keeps the event log.
func (r *pointRepository) ResetBalances(ctx context.Context) (int64, error) {
	const query = `UPDATE users SET balance = 0 WHERE balance <> 0`
	tag, err := r.storage.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
