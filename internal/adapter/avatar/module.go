package avatar

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/pontobip/internal/config"
)

// Module exposes the configured avatar store to fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.Avatar.Store == config.AvatarStoreS3 {
		p.Logger.Info("using s3 avatar store", slog.String("bucket", p.Config.Avatar.S3.Bucket))
		store, err := NewS3Store(p.Ctx, p.Config.Avatar.S3)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := NewLocalStore(p.Config.Avatar.Dir, p.Config.Avatar.PublicPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}
