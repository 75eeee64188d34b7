package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
	"github.com/polkiloo/pontobip/internal/metrics"
)

const podiumSize = 3

// RankingUseCase serves the leaderboard and resets it.
type RankingUseCase struct {
	rankings repository.RankingRepository
	points   repository.PointRepository
	logger   *slog.Logger
}

// NewRankingUseCase constructs RankingUseCase.
func NewRankingUseCase(rankings repository.RankingRepository, points repository.PointRepository, logger *slog.Logger) *RankingUseCase {
	return &RankingUseCase{rankings: rankings, points: points, logger: logger}
}

// List returns the leaderboard. Zero limit means every user.
func (u *RankingUseCase) List(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	if limit < 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.rankings.Top(ctx, limit)
}

// Top3 returns the podium.
func (u *RankingUseCase) Top3(ctx context.Context) ([]model.RankingEntry, error) {
	return u.rankings.Top(ctx, podiumSize)
}

// Reset zeroes every balance, keeping the event log, and returns the number of users affected.
func (u *RankingUseCase) Reset(ctx context.Context, trigger string) (int64, error) {
	affected, err := u.points.ResetBalances(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset balances: %w", err)
	}
	metrics.RankingResetsTotal.WithLabelValues(trigger).Inc()
	u.logger.Info("ranking reset", slog.String("trigger", trigger), slog.Int64("affected", affected))
	return affected, nil
}
