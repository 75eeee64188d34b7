package repository

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	DeleteByRole(ctx context.Context, id string, role model.Role) error
}
