package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

type rankingRepository struct {
	db *gorm.DB
}

func (r *rankingRepository) Top(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	query := r.db.WithContext(ctx).Model(&userRecord{}).
		Select("id", "name", "avatar_url", "balance").
		Order("balance DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recs []userRecord
	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}

	entries := make([]model.RankingEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, model.RankingEntry{
			UserID:    rec.ID,
			Name:      rec.Name,
			AvatarURL: rec.AvatarURL,
			Balance:   rec.Balance,
		})
	}
	return entries, nil
}
