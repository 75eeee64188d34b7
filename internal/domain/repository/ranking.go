package repository

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// RankingRepository projects users ordered by balance. A non-positive limit returns everyone.
type RankingRepository interface {
	Top(ctx context.Context, limit int) ([]model.RankingEntry, error)
}
