package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
)

// DefaultCampaignType is used when a campaign is created without a type.
const DefaultCampaignType = "quiz"

// CampaignInput describes a new campaign.
type CampaignInput struct {
	Type      string
	Title     string
	Questions []string
}

// RewardInput describes a catalog entry.
type RewardInput struct {
	Name     string
	Quantity int
}

// CatalogUseCase manages campaigns and the reward catalog.
type CatalogUseCase struct {
	campaigns repository.CampaignRepository
	rewards   repository.RewardRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(campaigns repository.CampaignRepository, rewards repository.RewardRepository) *CatalogUseCase {
	return &CatalogUseCase{campaigns: campaigns, rewards: rewards}
}

// Campaigns lists campaigns newest first.
func (u *CatalogUseCase) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	return u.campaigns.List(ctx)
}

// CreateCampaign validates and stores a campaign. Blank questions are dropped.
func (u *CatalogUseCase) CreateCampaign(ctx context.Context, in CampaignInput) (*model.Campaign, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	questions := make([]string, 0, len(in.Questions))
	for _, q := range in.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	kind := strings.ToLower(strings.TrimSpace(in.Type))
	if kind == "" {
		kind = DefaultCampaignType
	}

	campaign := &model.Campaign{Type: kind, Title: title, Questions: questions}
	if err := u.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Rewards returns the reward catalog.
func (u *CatalogUseCase) Rewards(ctx context.Context) ([]model.Reward, error) {
	return u.rewards.List(ctx)
}

// ReplaceRewards swaps the whole catalog.
func (u *CatalogUseCase) ReplaceRewards(ctx context.Context, in []RewardInput) ([]model.Reward, error) {
	rewards := make([]model.Reward, 0, len(in))
	for _, r := range in {
		name := strings.TrimSpace(r.Name)
		if name == "" || r.Quantity < 0 {
			return nil, domainErrors.ErrInvalidInput
		}
		rewards = append(rewards, model.Reward{Name: name, Quantity: r.Quantity})
	}
	return u.rewards.ReplaceAll(ctx, rewards)
}
