package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
	"github.com/polkiloo/pontobip/internal/server/http/middleware"
)

// AuthHandler processes registration, login and session management.
type AuthHandler struct {
	facade       AuthFacade
	cookieTTL    time.Duration
	secureCookie bool
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{facade: facade, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

// Register handles POST /api/cadastrar.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.facade.Register(c.Request.Context(), req.Name, req.Login(), req.Password)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput:  msgIncompleteUser,
			domainErrors.ErrAlreadyExists: msgUserExists,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		StatusResponse: dto.Success("Usuário cadastrado com sucesso!"),
		UserID:         user.ID,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Login(), req.Password)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput:       "Matrícula ou email e senha são obrigatórios.",
			domainErrors.ErrInvalidCredentials: "Matrícula, email ou senha inválidos.",
		})
		return
	}

	middleware.SetSessionCookie(c, token, h.cookieTTL, h.secureCookie)
	c.JSON(http.StatusOK, dto.LoginResponse{
		StatusResponse: dto.Success("Login bem-sucedido!"),
		User:           toUserResponse(user),
	})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.facade.Logout(c.Request.Context(), middleware.Token(c)); err != nil {
		respondError(c, err, nil)
		return
	}

	middleware.ClearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, dto.Success("Sessão encerrada."))
}

// ChangePassword handles POST /api/alterar-senha.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.facade.ChangePassword(c.Request.Context(), CurrentUserID(c), req.Current, req.Next)
	if err != nil {
		respondError(c, err, map[error]string{
			domainErrors.ErrInvalidInput:       "Senha atual e nova senha são obrigatórias.",
			domainErrors.ErrInvalidCredentials: "Senha atual incorreta.",
			domainErrors.ErrNotFound:           msgUserNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, dto.Success("Senha alterada com sucesso!"))
}

// Profile handles GET /api/usuario-logado/:id.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, map[error]string{domainErrors.ErrNotFound: msgUserNotFound})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		StatusResponse: dto.Success(""),
		User:           toUserResponse(user),
	})
}
