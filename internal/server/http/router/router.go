package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/pontobip/internal/adapter/avatar"
	"github.com/polkiloo/pontobip/internal/config"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/server/http/handlers"
	"github.com/polkiloo/pontobip/internal/server/http/middleware"
)

const metricsPath = "/metrics"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, cfg *config.Config, store avatar.Store, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handlers.UseJSONFieldNames()
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{metricsPath}),
	))
	engine.Use(middleware.ResolveSession(facade))

	authHandler := handlers.NewAuthHandler(facade, cfg.SessionTTL, cfg.CookieSecure)
	pointHandler := handlers.NewPointHandler(facade, cfg.Location())
	rankingHandler := handlers.NewRankingHandler(facade)
	avatarHandler := handlers.NewAvatarHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.POST("/cadastrar", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/alterar-senha", middleware.SessionRequired(), authHandler.ChangePassword)
	api.GET("/usuario-logado/:id", authHandler.Profile)

	api.POST("/ponto", pointHandler.Register)
	api.GET("/moedas/:id", pointHandler.Balance)
	api.GET("/pontos/:id", pointHandler.History)

	api.GET("/ranking", rankingHandler.List)
	api.GET("/ranking/top3", rankingHandler.Top3)
	api.POST("/reset-ranking", middleware.RequireRole(model.RoleManager), rankingHandler.Reset)

	api.POST("/upload-avatar", avatarHandler.Upload)

	api.GET("/campanhas", catalogHandler.Campaigns)
	api.POST("/campanhas", middleware.RequireRole(model.RoleManager), catalogHandler.CreateCampaign)
	api.GET("/recompensas", catalogHandler.Rewards)
	api.PUT("/recompensas", middleware.RequireRole(model.RoleManager), catalogHandler.ReplaceRewards)

	gestao := api.Group("/gestao")
	gestao.GET("/gestores", middleware.RequireRole(model.RoleManager), adminHandler.Managers)
	gestao.POST("/gestores", middleware.RequireRole(model.RoleAdmin), adminHandler.CreateManager)
	gestao.DELETE("/gestores/:id", middleware.RequireRole(model.RoleAdmin), adminHandler.DeleteManager)

	if local, ok := store.(*avatar.LocalStore); ok && cfg.Avatar.PublicPath != "" {
		engine.Static(cfg.Avatar.PublicPath, local.Dir())
	}

	engine.GET("/healthz", healthHandler.Check)
	engine.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	return engine
}
