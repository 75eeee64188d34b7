package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pontobip/internal/adapter/avatar"
	"github.com/polkiloo/pontobip/internal/app"
	"github.com/polkiloo/pontobip/internal/config"
	"github.com/polkiloo/pontobip/internal/logger"
	"github.com/polkiloo/pontobip/internal/pkg/auth"
	"github.com/polkiloo/pontobip/internal/server/http/handlers"
	"github.com/polkiloo/pontobip/internal/server/http/router"
	"github.com/polkiloo/pontobip/internal/session"
	"github.com/polkiloo/pontobip/internal/storage"
	"github.com/polkiloo/pontobip/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		session.Module,
		storage.Module,
		avatar.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.AttendanceFacade) handlers.Facade { return f },
			func(f *app.AttendanceFacade) app.AdminSeeder { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
