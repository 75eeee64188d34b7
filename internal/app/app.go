package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/pontobip/internal/config"
	"github.com/polkiloo/pontobip/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewAttendanceFacade,
		newHTTPServer,
		newRankingReset,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *AttendanceFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRankingReset(p workerParams) (*worker.RankingReset, error) {
	return worker.NewRankingReset(p.Facade, p.Config.RankingResetSchedule, p.Config.Location(), p.Logger)
}

// AdminSeeder creates the bootstrap admin account.
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, name, login, password string) (bool, error)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.RankingReset
	Seeder     AdminSeeder
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seedAdmin(ctx, p.Seeder, p.Config.Admin, p.Logger); err != nil {
				return err
			}

			p.Logger.Info("starting pontobip", slog.String("addr", p.Server.Addr))
			if err := p.Worker.Start(ctx); err != nil {
				return err
			}
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("pontobip stopped")
			return nil
		},
	})
}

func seedAdmin(ctx context.Context, seeder AdminSeeder, admin config.AdminConfig, logger *slog.Logger) error {
	if seeder == nil || admin.Login == "" {
		return nil
	}
	created, err := seeder.EnsureAdmin(ctx, admin.Name, admin.Login, admin.Password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Info("admin account created", slog.String("login", admin.Login))
	}
	return nil
}
