// Package storage selects the configured database driver and exposes its repositories.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/pontobip/internal/config"
	"github.com/polkiloo/pontobip/internal/domain/repository"
	"github.com/polkiloo/pontobip/internal/storage/postgres"
	"github.com/polkiloo/pontobip/internal/storage/sqlite"
)

// Module wires the storage handle and repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.PointRepository { return f.Points() },
		func(f repository.Factory) repository.RankingRepository { return f.Rankings() },
		func(f repository.Factory) repository.CampaignRepository { return f.Campaigns() },
		func(f repository.Factory) repository.RewardRepository { return f.Rewards() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	logger := p.Logger.With(slog.String("driver", p.Config.DatabaseDriver))

	if p.Config.DatabaseDriver == config.DriverPostgres {
		s, err := postgres.New(p.Ctx, p.Config.DatabaseURI, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := sqlite.New(p.Config.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing storage")
			return factory.Close()
		},
	})
}
