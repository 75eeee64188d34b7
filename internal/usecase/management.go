package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/pontobip/internal/config"
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
	pkgAuth "github.com/polkiloo/pontobip/internal/pkg/auth"
	"github.com/polkiloo/pontobip/internal/session"
)

// ManagementUseCase administers manager accounts.
type ManagementUseCase struct {
	users         repository.UserRepository
	hasher        pkgAuth.PasswordHasher
	sessions      session.Store
	defaultAvatar string
	logger        *slog.Logger
}

// NewManagementUseCase constructs ManagementUseCase.
func NewManagementUseCase(
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	sessions session.Store,
	cfg *config.Config,
	logger *slog.Logger,
) *ManagementUseCase {
	return &ManagementUseCase{
		users:         users,
		hasher:        hasher,
		sessions:      sessions,
		defaultAvatar: cfg.Avatar.DefaultURL,
		logger:        logger,
	}
}

// ListManagers returns every gestor ordered by name.
func (u *ManagementUseCase) ListManagers(ctx context.Context) ([]model.User, error) {
	return u.users.ListByRole(ctx, model.RoleManager)
}

// CreateManager creates a gestor account.
func (u *ManagementUseCase) CreateManager(ctx context.Context, in RegisterInput) (*model.User, error) {
	return createAccount(ctx, u.users, u.hasher, in, model.RoleManager, u.defaultAvatar)
}

// DeleteManager removes a gestor and revokes its sessions. Other roles are reported as not found.
func (u *ManagementUseCase) DeleteManager(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domainErrors.ErrInvalidInput
	}
	if err := u.users.DeleteByRole(ctx, id, model.RoleManager); err != nil {
		return err
	}
	if err := u.sessions.DestroyByUser(ctx, id); err != nil {
		u.logger.Warn("failed to revoke manager sessions", slog.String("user_id", id), slog.Any("error", err))
	}
	return nil
}
