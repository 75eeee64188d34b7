package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
)

// CatalogHandler serves campaigns and the reward catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Campaigns handles GET /api/campanhas.
func (h *CatalogHandler) Campaigns(c *gin.Context) {
	campaigns, err := h.facade.Campaigns(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	resp := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		resp = append(resp, toCampaignResponse(&campaigns[i]))
	}
	c.JSON(http.StatusOK, dto.CampaignsResponse{StatusResponse: dto.Success(""), Campaigns: resp})
}

// CreateCampaign handles POST /api/campanhas.
func (h *CatalogHandler) CreateCampaign(c *gin.Context) {
	var req dto.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	campaign, err := h.facade.CreateCampaign(c.Request.Context(), req.Type, req.Title, req.Questions)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput: "Título e ao menos uma pergunta são obrigatórios.",
		})
		return
	}

	c.JSON(http.StatusCreated, dto.CampaignCreatedResponse{
		StatusResponse: dto.Success("Campanha criada com sucesso!"),
		Campaign:       toCampaignResponse(campaign),
	})
}

// Rewards handles GET /api/recompensas.
func (h *CatalogHandler) Rewards(c *gin.Context) {
	rewards, err := h.facade.Rewards(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, dto.RewardsResponse{StatusResponse: dto.Success(""), Rewards: toRewardResponses(rewards)})
}

// ReplaceRewards handles PUT /api/recompensas.
func (h *CatalogHandler) ReplaceRewards(c *gin.Context) {
	var req dto.RewardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := make([]model.Reward, 0, len(req.Rewards))
	for _, r := range req.Rewards {
		in = append(in, model.Reward{Name: r.Name, Quantity: r.Quantity})
	}

	rewards, err := h.facade.ReplaceRewards(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput: "Cada recompensa precisa de nome e quantidade não negativa.",
		})
		return
	}
	c.JSON(http.StatusOK, dto.RewardsResponse{
		StatusResponse: dto.Success("Recompensas atualizadas com sucesso!"),
		Rewards:        toRewardResponses(rewards),
	})
}

func toCampaignResponse(c *model.Campaign) dto.CampaignResponse {
	questions := c.Questions
	if questions == nil {
		questions = []string{}
	}
	return dto.CampaignResponse{ID: c.ID, Type: c.Type, Title: c.Title, Questions: questions, CreatedAt: c.CreatedAt}
}

func toRewardResponses(rewards []model.Reward) []dto.RewardResponse {
	resp := make([]dto.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		resp = append(resp, dto.RewardResponse{ID: r.ID, Name: r.Name, Quantity: r.Quantity})
	}
	return resp
}
