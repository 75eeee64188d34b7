package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
)

const (
	avatarField = "avatar"
	// jsonEnvelopeSlack covers the data URI prefix and the other JSON fields.
	jsonEnvelopeSlack = 4 << 10
)

var avatarMessages = map[error]string{
	domainErrors.ErrInvalidInput: "ID do usuário e imagem são obrigatórios.",
	domainErrors.ErrNotFound:     msgUserNotFound,
}

// AvatarHandler accepts profile pictures as multipart files or base64 JSON.
type AvatarHandler struct {
	facade AvatarFacade
}

// NewAvatarHandler constructs AvatarHandler.
func NewAvatarHandler(facade AvatarFacade) *AvatarHandler {
	return &AvatarHandler{facade: facade}
}

// Upload handles POST /api/upload-avatar.
func (h *AvatarHandler) Upload(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.uploadMultipart(c)
		return
	}

	if limit := h.facade.AvatarMaxBytes(); limit > 0 {
		// base64 inflates the image by a third.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit*4/3+jsonEnvelopeSlack)
	}

	var req dto.AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, domainErrors.ErrImageTooLarge, avatarMessages)
			return
		}
		respondBindError(c, err)
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = CurrentUserID(c)
	}

	url, err := h.facade.UploadAvatarBase64(c.Request.Context(), userID, req.Image)
	if err != nil {
		respondError(c, err, avatarMessages)
		return
	}
	respondAvatar(c, url)
}

func (h *AvatarHandler) uploadMultipart(c *gin.Context) {
	file, err := c.FormFile(avatarField)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure("Nenhuma imagem enviada."))
		return
	}
	userID := c.PostForm("usuario_id")
	if userID == "" {
		userID = CurrentUserID(c)
	}

	data, err := h.read(file)
	if err != nil {
		respondError(c, err, avatarMessages)
		return
	}

	url, err := h.facade.UploadAvatar(c.Request.Context(), userID, data)
	if err != nil {
		respondError(c, err, avatarMessages)
		return
	}
	respondAvatar(c, url)
}

// read loads at most one byte past the limit so oversized files are still detected.
func (h *AvatarHandler) read(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open avatar upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit := h.facade.AvatarMaxBytes(); limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read avatar upload: %w", err)
	}
	return data, nil
}

func respondAvatar(c *gin.Context, url string) {
	c.JSON(http.StatusOK, dto.AvatarResponse{
		StatusResponse: dto.Success("Avatar atualizado com sucesso!"),
		AvatarURL:      url,
	})
}
