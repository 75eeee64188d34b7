package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"

	"github.com/polkiloo/pontobip/internal/config"
)

// Module provides the configured session store.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.SessionStore != config.SessionStoreRedis {
		store := NewMemoryStore(p.Config.SessionTTL)
		if err := schedulePurge(p.Lifecycle, store, p.Config.SessionPurgeInterval, p.Logger); err != nil {
			return nil, err
		}
		return store, nil
	}

	client, err := Connect(context.Background(), p.Config.Redis.Addr, p.Config.Redis.DB)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			p.Logger.Info("closing redis session store")
			return client.Close()
		},
	})

	return NewRedisStore(client, p.Config.SessionTTL), nil
}

// schedulePurge evicts expired in-memory sessions every interval. A non-positive interval disables it.
func schedulePurge(lc fx.Lifecycle, store *MemoryStore, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+interval.String(), func() {
		if n := store.Purge(); n > 0 {
			logger.Debug("purged expired sessions", slog.Int("removed", n))
		}
	}); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			<-c.Stop().Done()
			return nil
		},
	})
	return nil
}
