package dto

import "time"

// CampaignRequest describes a new campaign.
type CampaignRequest struct {
	Type      string   `json:"tipo"`
	Title     string   `json:"titulo" binding:"required"`
	Questions []string `json:"perguntas" binding:"required,min=1"`
}

type CampaignResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"tipo"`
	Title     string    `json:"titulo"`
	Questions []string  `json:"perguntas"`
	CreatedAt time.Time `json:"criado_em"`
}

type CampaignCreatedResponse struct {
	StatusResponse
	Campaign CampaignResponse `json:"campanha"`
}

type CampaignsResponse struct {
	StatusResponse
	Campaigns []CampaignResponse `json:"campanhas"`
}

// RewardItem is a catalog entry in requests.
type RewardItem struct {
	Name     string `json:"nome" binding:"required"`
	Quantity int    `json:"quantidade" binding:"gte=0"`
}

// RewardsRequest replaces the whole catalog.
type RewardsRequest struct {
	Rewards []RewardItem `json:"recompensas" binding:"dive"`
}

type RewardResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Quantity int    `json:"quantidade"`
}

type RewardsResponse struct {
	StatusResponse
	Rewards []RewardResponse `json:"recompensas"`
}
