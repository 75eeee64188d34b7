package repository

import (
	"context"
	"time"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// PointRepository owns the event log and the balance ledger.
type PointRepository interface {
	// Register appends an event and credits the balance in one transaction.
	Register(ctx context.Context, userID string, amount int64, at time.Time) (*model.ClockIn, error)
	ListByUser(ctx context.Context, userID string) ([]model.PointEvent, error)
	Balance(ctx context.Context, userID string) (int64, error)
	// ResetBalances zeroes every balance and returns the number of users touched.
	ResetBalances(ctx context.Context) (int64, error)
}
