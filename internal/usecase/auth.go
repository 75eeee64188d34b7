package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/polkiloo/pontobip/internal/config"
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
	"github.com/polkiloo/pontobip/internal/metrics"
	pkgAuth "github.com/polkiloo/pontobip/internal/pkg/auth"
	"github.com/polkiloo/pontobip/internal/session"
)

// RegisterInput carries the account fields shared by self registration and manager creation.
type RegisterInput struct {
	Name     string
	Login    string
	Password string
}

// AuthUseCase handles accounts, credentials and sessions.
type AuthUseCase struct {
	users         repository.UserRepository
	hasher        pkgAuth.PasswordHasher
	tokens        pkgAuth.Strategy
	sessions      session.Store
	defaultAvatar string
	logger        *slog.Logger

	dummyOnce sync.Once
	dummy     string
}

// dummyPassword is hashed once; unknown logins are compared against it.
const dummyPassword = "pontobip-unknown-login"

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	sessions session.Store,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:         users,
		hasher:        hasher,
		tokens:        strategy,
		sessions:      sessions,
		defaultAvatar: cfg.Avatar.DefaultURL,
		logger:        logger,
	}
}

// Register creates a collaborator account.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	usr, err := createAccount(ctx, u.users, u.hasher, in, model.RoleCollaborator, u.defaultAvatar)
	if err != nil {
		return nil, err
	}
	metrics.UsersRegisteredTotal.Inc()
	return usr, nil
}

// Authenticate validates credentials. Unknown login and wrong password are indistinguishable.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	usr, err := u.authenticate(ctx, login, password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		}
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return usr, nil
}

func (u *AuthUseCase) authenticate(ctx context.Context, login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.compareDummy(password)
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	if u.hasher.NeedsRehash(usr.PasswordHash) {
		u.rehash(ctx, usr, password)
	}
	return usr, nil
}

func (u *AuthUseCase) compareDummy(password string) {
	u.dummyOnce.Do(func() {
		hash, err := u.hasher.Hash(dummyPassword)
		if err != nil {
			u.logger.Warn("failed to prepare dummy password hash", slog.Any("error", err))
			return
		}
		u.dummy = hash
	})
	if u.dummy != "" {
		_ = u.hasher.Compare(u.dummy, password)
	}
}

func (u *AuthUseCase) rehash(ctx context.Context, usr *model.User, password string) {
	hash, err := u.hasher.Hash(password)
	if err == nil {
		err = u.users.UpdatePasswordHash(ctx, usr.ID, hash)
	}
	if err != nil {
		u.logger.Warn("failed to upgrade password hash", slog.String("user_id", usr.ID), slog.Any("error", err))
		return
	}
	usr.PasswordHash = hash
}

// Login authenticates the user and opens a session, returning the signed session token.
func (u *AuthUseCase) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	usr, err := u.Authenticate(ctx, login, password)
	if err != nil {
		return nil, "", err
	}
	token, err := u.StartSession(ctx, usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// StartSession stores a session for the user and signs its id.
func (u *AuthUseCase) StartSession(ctx context.Context, usr *model.User) (string, error) {
	sess, err := u.sessions.Create(ctx, usr.ID, usr.Role)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	token, err := u.tokens.IssueToken(sess.ID)
	if err != nil {
		_ = u.sessions.Destroy(ctx, sess.ID)
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ResolveSession verifies the token and returns the live session behind it.
// The role is taken from the current user record; sessions of deleted users are destroyed.
func (u *AuthUseCase) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	id, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}
	sess, err := u.sessions.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	usr, err := u.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			_ = u.sessions.Destroy(ctx, sess.ID)
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	sess.Role = usr.Role
	return sess, nil
}

// Logout destroys the session behind the token. Unknown or invalid tokens are ignored.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return u.sessions.Destroy(ctx, id)
}

// ChangePassword replaces the password after checking the current one.
func (u *AuthUseCase) ChangePassword(ctx context.Context, userID, current, next string) error {
	if userID == "" || current == "" || strings.TrimSpace(next) == "" {
		return domainErrors.ErrInvalidInput
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.hasher.Compare(usr.PasswordHash, current); err != nil {
		return domainErrors.ErrInvalidCredentials
	}
	hash, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}
	return u.users.UpdatePasswordHash(ctx, userID, hash)
}

// Profile fetches user by identifier.
func (u *AuthUseCase) Profile(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.users.GetByID(ctx, id)
}

// EnsureAdmin creates the bootstrap admin unless the login is already taken.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	if strings.TrimSpace(in.Login) == "" {
		return false, nil
	}
	if _, err := u.users.GetByLogin(ctx, strings.TrimSpace(in.Login)); err == nil {
		return false, nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return false, err
	}

	if _, err := createAccount(ctx, u.users, u.hasher, in, model.RoleAdmin, u.defaultAvatar); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func createAccount(
	ctx context.Context,
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	in RegisterInput,
	role model.Role,
	avatarURL string,
) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	login := strings.TrimSpace(in.Login)
	if name == "" || login == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	usr := &model.User{
		Name:         name,
		Login:        login,
		PasswordHash: hash,
		AvatarURL:    avatarURL,
		Role:         role,
	}
	if err := users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}
