package repository

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// CampaignRepository stores campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	List(ctx context.Context) ([]model.Campaign, error)
}

// RewardRepository stores the reward catalog.
type RewardRepository interface {
	List(ctx context.Context) ([]model.Reward, error)
	ReplaceAll(ctx context.Context, rewards []model.Reward) ([]model.Reward, error)
}
