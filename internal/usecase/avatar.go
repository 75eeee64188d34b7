package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/polkiloo/pontobip/internal/adapter/avatar"
	"github.com/polkiloo/pontobip/internal/config"
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/repository"
)

// AvatarUseCase validates and stores profile pictures.
type AvatarUseCase struct {
	users    repository.UserRepository
	store    avatar.Store
	maxBytes int64
}

// NewAvatarUseCase constructs AvatarUseCase.
func NewAvatarUseCase(users repository.UserRepository, store avatar.Store, cfg *config.Config) *AvatarUseCase {
	return &AvatarUseCase{users: users, store: store, maxBytes: cfg.Avatar.MaxBytes}
}

// MaxBytes returns the accepted upload size.
func (u *AvatarUseCase) MaxBytes() int64 {
	return u.maxBytes
}

// Upload stores the image as the user's avatar and returns its URL.
func (u *AvatarUseCase) Upload(ctx context.Context, userID string, data []byte) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domainErrors.ErrInvalidInput
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return "", err
	}

	img, err := avatar.Inspect(data, u.maxBytes)
	if err != nil {
		return "", err
	}

	url, err := u.store.Save(ctx, userID+img.Ext, img.Data, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	if err := u.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// UploadBase64 decodes a data URL or bare base64 payload and uploads it.
func (u *AvatarUseCase) UploadBase64(ctx context.Context, userID, payload string) (string, error) {
	data, err := avatar.DecodeBase64(payload)
	if err != nil {
		return "", err
	}
	return u.Upload(ctx, userID, data)
}
