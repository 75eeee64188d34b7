package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/polkiloo/pontobip/internal/config"
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
	"github.com/polkiloo/pontobip/internal/metrics"
)

// PointUseCase registers clock-ins and exposes balances and history.
type PointUseCase struct {
	points repository.PointRepository
	users  repository.UserRepository
	reward int64
	now    func() time.Time
}

// NewPointUseCase constructs PointUseCase crediting cfg.RewardPerPoint per clock-in.
func NewPointUseCase(points repository.PointRepository, users repository.UserRepository, cfg *config.Config) *PointUseCase {
	return &PointUseCase{points: points, users: users, reward: cfg.RewardPerPoint, now: time.Now}
}

// Reward returns the amount credited per clock-in.
func (u *PointUseCase) Reward() int64 {
	return u.reward
}

// Register records a clock-in and credits the reward.
func (u *PointUseCase) Register(ctx context.Context, userID string) (*model.ClockIn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	clockIn, err := u.points.Register(ctx, userID, u.reward, u.now())
	if err != nil {
		return nil, err
	}
	metrics.PointsRegisteredTotal.Inc()
	metrics.CoinsCreditedTotal.Add(float64(clockIn.Event.Amount))
	return clockIn, nil
}

// Balance returns the current coin balance of the user.
func (u *PointUseCase) Balance(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domainErrors.ErrInvalidInput
	}
	return u.points.Balance(ctx, userID)
}

// History returns the user's clock-ins newest first.
func (u *PointUseCase) History(ctx context.Context, userID string) ([]model.PointEvent, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return u.points.ListByUser(ctx, userID)
}
