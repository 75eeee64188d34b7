package test

import (
	"context"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

// SessionResolverStub resolves every token to Session or fails with Err.
type SessionResolverStub struct {
	Session *model.Session
	Err     error
}

// ResolveSession returns configured session.
func (s SessionResolverStub) ResolveSession(context.Context, string) (*model.Session, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Session, nil
}

// FacadeStub implements every HTTP-facing operation through optional function fields.
// Unset functions return zero values.
type FacadeStub struct {
	ResolveSessionFn func(context.Context, string) (*model.Session, error)

	RegisterFn       func(context.Context, string, string, string) (*model.User, error)
	LoginFn          func(context.Context, string, string) (*model.User, string, error)
	LogoutFn         func(context.Context, string) error
	ChangePasswordFn func(context.Context, string, string, string) error
	ProfileFn        func(context.Context, string) (*model.User, error)

	RegisterPointFn func(context.Context, string) (*model.ClockIn, error)
	BalanceFn       func(context.Context, string) (int64, error)
	HistoryFn       func(context.Context, string) ([]model.PointEvent, error)

	RankingFn      func(context.Context, int) ([]model.RankingEntry, error)
	Top3Fn         func(context.Context) ([]model.RankingEntry, error)
	ResetRankingFn func(context.Context, string) (int64, error)

	UploadAvatarFn       func(context.Context, string, []byte) (string, error)
	UploadAvatarBase64Fn func(context.Context, string, string) (string, error)
	MaxBytes             int64

	ManagersFn      func(context.Context) ([]model.User, error)
	CreateManagerFn func(context.Context, string, string, string) (*model.User, error)
	DeleteManagerFn func(context.Context, string) error

	CampaignsFn      func(context.Context) ([]model.Campaign, error)
	CreateCampaignFn func(context.Context, string, string, []string) (*model.Campaign, error)
	RewardsFn        func(context.Context) ([]model.Reward, error)
	ReplaceRewardsFn func(context.Context, []model.Reward) ([]model.Reward, error)

	HealthCheckFn func(context.Context) error
}

func (s FacadeStub) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	if s.ResolveSessionFn != nil {
		return s.ResolveSessionFn(ctx, token)
	}
	return nil, nil
}

func (s FacadeStub) Register(ctx context.Context, name, login, password string) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, login, password)
	}
	return &model.User{ID: "u1", Name: name, Login: login, Role: model.RoleCollaborator}, nil
}

func (s FacadeStub) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, login, password)
	}
	return &model.User{ID: "u1", Login: login, Role: model.RoleCollaborator}, "token", nil
}

func (s FacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

func (s FacadeStub) ChangePassword(ctx context.Context, userID, current, next string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, current, next)
	}
	return nil
}

func (s FacadeStub) Profile(ctx context.Context, userID string) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

func (s FacadeStub) RegisterPoint(ctx context.Context, userID string) (*model.ClockIn, error) {
	if s.RegisterPointFn != nil {
		return s.RegisterPointFn(ctx, userID)
	}
	return &model.ClockIn{Event: model.PointEvent{ID: 1, UserID: userID, Amount: 5}, Balance: 5}, nil
}

func (s FacadeStub) Balance(ctx context.Context, userID string) (int64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return 0, nil
}

func (s FacadeStub) History(ctx context.Context, userID string) ([]model.PointEvent, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return nil, nil
}

func (s FacadeStub) Ranking(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	if s.RankingFn != nil {
		return s.RankingFn(ctx, limit)
	}
	return nil, nil
}

func (s FacadeStub) Top3(ctx context.Context) ([]model.RankingEntry, error) {
	if s.Top3Fn != nil {
		return s.Top3Fn(ctx)
	}
	return nil, nil
}

func (s FacadeStub) ResetRanking(ctx context.Context, trigger string) (int64, error) {
	if s.ResetRankingFn != nil {
		return s.ResetRankingFn(ctx, trigger)
	}
	return 0, nil
}

func (s FacadeStub) UploadAvatar(ctx context.Context, userID string, data []byte) (string, error) {
	if s.UploadAvatarFn != nil {
		return s.UploadAvatarFn(ctx, userID, data)
	}
	return "/avatars/" + userID + ".png", nil
}

func (s FacadeStub) UploadAvatarBase64(ctx context.Context, userID, payload string) (string, error) {
	if s.UploadAvatarBase64Fn != nil {
		return s.UploadAvatarBase64Fn(ctx, userID, payload)
	}
	return "/avatars/" + userID + ".png", nil
}

func (s FacadeStub) AvatarMaxBytes() int64 {
	return s.MaxBytes
}

func (s FacadeStub) Managers(ctx context.Context) ([]model.User, error) {
	if s.ManagersFn != nil {
		return s.ManagersFn(ctx)
	}
	return nil, nil
}

func (s FacadeStub) CreateManager(ctx context.Context, name, login, password string) (*model.User, error) {
	if s.CreateManagerFn != nil {
		return s.CreateManagerFn(ctx, name, login, password)
	}
	return &model.User{ID: "m1", Name: name, Login: login, Role: model.RoleManager}, nil
}

func (s FacadeStub) DeleteManager(ctx context.Context, id string) error {
	if s.DeleteManagerFn != nil {
		return s.DeleteManagerFn(ctx, id)
	}
	return nil
}

func (s FacadeStub) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	if s.CampaignsFn != nil {
		return s.CampaignsFn(ctx)
	}
	return nil, nil
}

func (s FacadeStub) CreateCampaign(ctx context.Context, kind, title string, questions []string) (*model.Campaign, error) {
	if s.CreateCampaignFn != nil {
		return s.CreateCampaignFn(ctx, kind, title, questions)
	}
	return &model.Campaign{ID: 1, Type: kind, Title: title, Questions: questions}, nil
}

func (s FacadeStub) Rewards(ctx context.Context) ([]model.Reward, error) {
	if s.RewardsFn != nil {
		return s.RewardsFn(ctx)
	}
	return nil, nil
}

func (s FacadeStub) ReplaceRewards(ctx context.Context, rewards []model.Reward) ([]model.Reward, error) {
	if s.ReplaceRewardsFn != nil {
		return s.ReplaceRewardsFn(ctx, rewards)
	}
	return rewards, nil
}

func (s FacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthCheckFn != nil {
		return s.HealthCheckFn(ctx)
	}
	return nil
}
