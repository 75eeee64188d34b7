package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
)

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04:05"
)

// PointHandler serves clock-in, balance and history endpoints.
type PointHandler struct {
	facade PointFacade
	loc    *time.Location
}

// NewPointHandler constructs PointHandler rendering timestamps in loc.
func NewPointHandler(facade PointFacade, loc *time.Location) *PointHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &PointHandler{facade: facade, loc: loc}
}

// Register handles POST /api/ponto.
func (h *PointHandler) Register(c *gin.Context) {
	var req dto.PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = CurrentUserID(c)
	}

	clockIn, err := h.facade.RegisterPoint(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput: "ID do usuário é obrigatório para registrar o ponto.",
			domainErrors.ErrNotFound:     msgUserNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, dto.PointResponse{
		StatusResponse: dto.Success("Ponto registrado e moedas adicionadas!"),
		Coins:          clockIn.Balance,
		Added:          clockIn.Event.Amount,
	})
}

// Balance handles GET /api/moedas/:id.
func (h *PointHandler) Balance(c *gin.Context) {
	coins, err := h.facade.Balance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, map[error]string{domainErrors.ErrNotFound: msgUserNotFound})
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{StatusResponse: dto.Success(""), Coins: coins})
}

// History handles GET /api/pontos/:id.
func (h *PointHandler) History(c *gin.Context) {
	events, err := h.facade.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, map[error]string{domainErrors.ErrNotFound: msgUserNotFound})
		return
	}

	points := make([]dto.PointEntry, 0, len(events))
	for _, e := range events {
		at := e.RecordedAt.In(h.loc)
		points = append(points, dto.PointEntry{
			ID:    e.ID,
			Date:  at.Format(dateLayout),
			Time:  at.Format(timeLayout),
			Coins: e.Amount,
		})
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{StatusResponse: dto.Success(""), Points: points})
}
