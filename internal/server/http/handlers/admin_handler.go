package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
)

// AdminHandler manages gestor accounts.
type AdminHandler struct {
	facade ManagementFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade ManagementFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Managers handles GET /api/gestao/gestores.
func (h *AdminHandler) Managers(c *gin.Context) {
	users, err := h.facade.Managers(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.ManagersResponse{StatusResponse: dto.Success(""), Managers: resp})
}

// CreateManager handles POST /api/gestao/gestores.
func (h *AdminHandler) CreateManager(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.facade.CreateManager(c.Request.Context(), req.Name, req.Login(), req.Password)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput:  msgIncompleteUser,
			domainErrors.ErrAlreadyExists: msgUserExists,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.ManagerCreatedResponse{
		StatusResponse: dto.Success("Gestor cadastrado com sucesso!"),
		UserID:         user.ID,
	})
}

// DeleteManager handles DELETE /api/gestao/gestores/:id.
func (h *AdminHandler) DeleteManager(c *gin.Context) {
	if err := h.facade.DeleteManager(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, map[error]string{domainErrors.ErrNotFound: "Gestor não encontrado."})
		return
	}
	c.JSON(http.StatusOK, dto.Success("Gestor removido com sucesso!"))
}
