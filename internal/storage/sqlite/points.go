package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
)

type pointRepository struct {
	db *gorm.DB
}

// Register credits amount and appends the event in one transaction.
func (r *pointRepository) Register(ctx context.Context, userID string, amount int64, at time.Time) (*model.ClockIn, error) {
	event := pointRecord{UserID: userID, Amount: amount, RecordedAt: at.UTC()}
	var balance int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userRecord{}).Where("id = ?", userID).
			UpdateColumn("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainErrors.ErrNotFound
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Model(&userRecord{}).Select("balance").Where("id = ?", userID).Row().Scan(&balance)
	})
	if err != nil {
		return nil, err
	}

	return &model.ClockIn{Event: event.toModel(), Balance: balance}, nil
}

func (r *pointRepository) ListByUser(ctx context.Context, userID string) ([]model.PointEvent, error) {
	var recs []pointRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at DESC, id DESC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	events := make([]model.PointEvent, 0, len(recs))
	for _, rec := range recs {
		events = append(events, rec.toModel())
	}
	return events, nil
}

func (r *pointRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Select("balance").Where("id = ?", userID).Row().Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}

// ResetBalances zeroes every balance and keeps the event log.
func (r *pointRepository) ResetBalances(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&userRecord{}).Where("balance <> ?", 0).UpdateColumn("balance", 0)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
