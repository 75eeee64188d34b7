package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now().UTC()
	}
	rec := campaignRecord{
		Type:      campaign.Type,
		Title:     campaign.Title,
		Questions: campaign.Questions,
		CreatedAt: campaign.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	campaign.ID = rec.ID
	return nil
}

func (r *campaignRepository) List(ctx context.Context) ([]model.Campaign, error) {
	var recs []campaignRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	campaigns := make([]model.Campaign, 0, len(recs))
	for _, rec := range recs {
		campaigns = append(campaigns, rec.toModel())
	}
	return campaigns, nil
}

type rewardRepository struct {
	db *gorm.DB
}

func (r *rewardRepository) List(ctx context.Context) ([]model.Reward, error) {
	var recs []rewardRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	rewards := make([]model.Reward, 0, len(recs))
	for _, rec := range recs {
		rewards = append(rewards, rec.toModel())
	}
	return rewards, nil
}

// ReplaceAll swaps the whole reward set atomically.
func (r *rewardRepository) ReplaceAll(ctx context.Context, rewards []model.Reward) ([]model.Reward, error) {
	recs := make([]rewardRecord, 0, len(rewards))
	for _, rw := range rewards {
		recs = append(recs, rewardRecord{Name: rw.Name, Quantity: rw.Quantity})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&rewardRecord{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Create(&recs).Error
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.Reward, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rec.toModel())
	}
	return result, nil
}
