package handlers

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/server/http/middleware"
)

// AuthFacade describes account and session capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, login, password string) (*model.User, error)
	Login(ctx context.Context, login, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, current, next string) error
	Profile(ctx context.Context, userID string) (*model.User, error)
}

// PointFacade exposes clock-in, balance and history.
type PointFacade interface {
	RegisterPoint(ctx context.Context, userID string) (*model.ClockIn, error)
	Balance(ctx context.Context, userID string) (int64, error)
	History(ctx context.Context, userID string) ([]model.PointEvent, error)
}

// RankingFacade exposes the leaderboard.
type RankingFacade interface {
	Ranking(ctx context.Context, limit int) ([]model.RankingEntry, error)
	Top3(ctx context.Context) ([]model.RankingEntry, error)
	ResetRanking(ctx context.Context, trigger string) (int64, error)
}

// AvatarFacade stores profile pictures.
type AvatarFacade interface {
	UploadAvatar(ctx context.Context, userID string, data []byte) (string, error)
	UploadAvatarBase64(ctx context.Context, userID, payload string) (string, error)
	AvatarMaxBytes() int64
}

// ManagementFacade administers manager accounts.
type ManagementFacade interface {
	Managers(ctx context.Context) ([]model.User, error)
	CreateManager(ctx context.Context, name, login, password string) (*model.User, error)
	DeleteManager(ctx context.Context, id string) error
}

// CatalogFacade manages campaigns and rewards.
type CatalogFacade interface {
	Campaigns(ctx context.Context) ([]model.Campaign, error)
	CreateCampaign(ctx context.Context, kind, title string, questions []string) (*model.Campaign, error)
	Rewards(ctx context.Context) ([]model.Reward, error)
	ReplaceRewards(ctx context.Context, rewards []model.Reward) ([]model.Reward, error)
}

// HealthFacade reports storage health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	middleware.SessionResolver
	AuthFacade
	PointFacade
	RankingFacade
	AvatarFacade
	ManagementFacade
	CatalogFacade
	HealthFacade
}
