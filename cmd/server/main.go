package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/mcoot/torosvacas/internal/api"
	"github.com/mcoot/torosvacas/internal/api/apierr"
	"github.com/mcoot/torosvacas/internal/config"
	"github.com/mcoot/torosvacas/internal/factory"
	"github.com/mcoot/torosvacas/internal/metrics"
	"github.com/mcoot/torosvacas/internal/middleware"
	"github.com/mcoot/torosvacas/internal/services/auth"
	"github.com/mcoot/torosvacas/internal/services/game"
	redisstorage "github.com/mcoot/torosvacas/internal/storage/redis"
	"github.com/mcoot/torosvacas/internal/web"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		GameConfig:  game.Config{GameOverTime: cfg.GameOverTime},
		AuthConfig:  auth.Config{SessionDuration: cfg.SessionDuration},
		Logger:      logger,
		StorageType: cfg.StorageType,
	}
	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.SessionTTL = cfg.SessionDuration
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedUserEnabled() {
		user, err := app.AuthService.EnsureUser(ctx, cfg.SeedUserName, cfg.SeedUserEmail, cfg.SeedUserPassword)
		if err != nil {
			logger.Error("failed to create seed user", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("seed user ready", slog.String("user_id", string(user.ID)))
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:             rate.Limit(cfg.RateLimitRPS),
		Burst:           cfg.RateLimitBurst,
		CleanupInterval: middleware.DefaultRateLimiterConfig().CleanupInterval,
	}, logger, app.Metrics, apierr.WriteRateLimited)
	defer limiter.Stop()

	handler := newHandler(app, logger, limiter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr()
	server := api.NewServer(handler, serverConfig, logger)

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Duration("game_over_time", cfg.GameOverTime),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// newHandler serves the HTML pages first and falls through to the JSON API
func newHandler(app *factory.App, logger *slog.Logger, limiter *middleware.RateLimiter) http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Metrics:        app.Metrics,
		MetricsHandler: metrics.Handler(app.Registry),
		RateLimiter:    limiter,
	})

	root := mux.NewRouter()
	web.Register(root, web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Metrics:        app.Metrics,
	})
	root.NotFoundHandler = apiRouter
	root.MethodNotAllowedHandler = apiRouter

	return root
}
