package app

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
	"github.com/polkiloo/pontobip/internal/usecase"
)

// HealthChecker reports whether the storage handle is usable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type AttendanceFacade struct {
	auth       *usecase.AuthUseCase
	points     *usecase.PointUseCase
	ranking    *usecase.RankingUseCase
	avatars    *usecase.AvatarUseCase
	management *usecase.ManagementUseCase
	catalog    *usecase.CatalogUseCase
	health     HealthChecker
}

func NewAttendanceFacade(
	auth *usecase.AuthUseCase,
	points *usecase.PointUseCase,
	ranking *usecase.RankingUseCase,
	avatars *usecase.AvatarUseCase,
	management *usecase.ManagementUseCase,
	catalog *usecase.CatalogUseCase,
	storage repository.Factory,
) *AttendanceFacade {
	return &AttendanceFacade{
		auth:       auth,
		points:     points,
		ranking:    ranking,
		avatars:    avatars,
		management: management,
		catalog:    catalog,
		health:     storage,
	}
}

func (f *AttendanceFacade) Register(ctx context.Context, name, login, password string) (*model.User, error) {
	return f.auth.Register(ctx, usecase.RegisterInput{Name: name, Login: login, Password: password})
}

func (f *AttendanceFacade) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, login, password)
}

func (f *AttendanceFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *AttendanceFacade) ChangePassword(ctx context.Context, userID, current, next string) error {
	return f.auth.ChangePassword(ctx, userID, current, next)
}

func (f *AttendanceFacade) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	return f.auth.ResolveSession(ctx, token)
}

func (f *AttendanceFacade) Profile(ctx context.Context, userID string) (*model.User, error) {
	return f.auth.Profile(ctx, userID)
}

// EnsureAdmin seeds the bootstrap admin account.
func (f *AttendanceFacade) EnsureAdmin(ctx context.Context, name, login, password string) (bool, error) {
	return f.auth.EnsureAdmin(ctx, usecase.RegisterInput{Name: name, Login: login, Password: password})
}

func (f *AttendanceFacade) RegisterPoint(ctx context.Context, userID string) (*model.ClockIn, error) {
	return f.points.Register(ctx, userID)
}

func (f *AttendanceFacade) Balance(ctx context.Context, userID string) (int64, error) {
	return f.points.Balance(ctx, userID)
}

func (f *AttendanceFacade) History(ctx context.Context, userID string) ([]model.PointEvent, error) {
	return f.points.History(ctx, userID)
}

func (f *AttendanceFacade) Ranking(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	return f.ranking.List(ctx, limit)
}

func (f *AttendanceFacade) Top3(ctx context.Context) ([]model.RankingEntry, error) {
	return f.ranking.Top3(ctx)
}

func (f *AttendanceFacade) ResetRanking(ctx context.Context, trigger string) (int64, error) {
	return f.ranking.Reset(ctx, trigger)
}

func (f *AttendanceFacade) UploadAvatar(ctx context.Context, userID string, data []byte) (string, error) {
	return f.avatars.Upload(ctx, userID, data)
}

func (f *AttendanceFacade) UploadAvatarBase64(ctx context.Context, userID, payload string) (string, error) {
	return f.avatars.UploadBase64(ctx, userID, payload)
}

func (f *AttendanceFacade) AvatarMaxBytes() int64 {
	return f.avatars.MaxBytes()
}

func (f *AttendanceFacade) Managers(ctx context.Context) ([]model.User, error) {
	return f.management.ListManagers(ctx)
}

func (f *AttendanceFacade) CreateManager(ctx context.Context, name, login, password string) (*model.User, error) {
	return f.management.CreateManager(ctx, usecase.RegisterInput{Name: name, Login: login, Password: password})
}

func (f *AttendanceFacade) DeleteManager(ctx context.Context, id string) error {
	return f.management.DeleteManager(ctx, id)
}

func (f *AttendanceFacade) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	return f.catalog.Campaigns(ctx)
}

func (f *AttendanceFacade) CreateCampaign(ctx context.Context, kind, title string, questions []string) (*model.Campaign, error) {
	return f.catalog.CreateCampaign(ctx, usecase.CampaignInput{Type: kind, Title: title, Questions: questions})
}

func (f *AttendanceFacade) Rewards(ctx context.Context) ([]model.Reward, error) {
	return f.catalog.Rewards(ctx)
}

func (f *AttendanceFacade) ReplaceRewards(ctx context.Context, rewards []model.Reward) ([]model.Reward, error) {
	in := make([]usecase.RewardInput, 0, len(rewards))
	for _, r := range rewards {
		in = append(in, usecase.RewardInput{Name: r.Name, Quantity: r.Quantity})
	}
	return f.catalog.ReplaceRewards(ctx, in)
}

func (f *AttendanceFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
