package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/metrics"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
)

const msgInvalidLimit = "Parâmetro limite inválido."

// RankingHandler serves the leaderboard.
type RankingHandler struct {
	facade RankingFacade
}

// NewRankingHandler constructs RankingHandler.
func NewRankingHandler(facade RankingFacade) *RankingHandler {
	return &RankingHandler{facade: facade}
}

// List handles GET /api/ranking with optional ?limite=N.
func (h *RankingHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.Failure(msgInvalidLimit))
			return
		}
		limit = n
	}

	entries, err := h.facade.Ranking(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, toRanking(entries))
}

// Top3 handles GET /api/ranking/top3.
func (h *RankingHandler) Top3(c *gin.Context) {
	entries, err := h.facade.Top3(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, toRanking(entries))
}

// Reset handles POST /api/reset-ranking.
func (h *RankingHandler) Reset(c *gin.Context) {
	affected, err := h.facade.ResetRanking(c.Request.Context(), metrics.TriggerManual)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, dto.ResetResponse{
		StatusResponse: dto.Success("Ranking zerado com sucesso!"),
		Affected:       affected,
	})
}

func toRanking(entries []model.RankingEntry) []dto.RankingEntry {
	resp := make([]dto.RankingEntry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.RankingEntry{ID: e.UserID, Name: e.Name, Avatar: e.AvatarURL, Bip: e.Balance})
	}
	return resp
}
