package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Points() PointRepository
	Rankings() RankingRepository
	Campaigns() CampaignRepository
	Rewards() RewardRepository
	HealthCheck(ctx context.Context) error
	Close() error
}
