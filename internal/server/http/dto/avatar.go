package dto

// AvatarUploadRequest carries a data URL or raw base64 image.
type AvatarUploadRequest struct {
	UserID string `json:"usuario_id"`
	Image  string `json:"imagem" binding:"required"`
}

type AvatarResponse struct {
	StatusResponse
	AvatarURL string `json:"avatarUrl"`
}
