package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mcoot/torosvacas/internal/dependencies/clock"
	"github.com/mcoot/torosvacas/internal/dependencies/random"
	"github.com/mcoot/torosvacas/internal/metrics"
	"github.com/mcoot/torosvacas/internal/services/auth"
	"github.com/mcoot/torosvacas/internal/services/game"
	"github.com/mcoot/torosvacas/internal/services/secret"
	"github.com/mcoot/torosvacas/internal/storage"
	"github.com/mcoot/torosvacas/internal/storage/memory"
	redisstorage "github.com/mcoot/torosvacas/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Metrics
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	// Services
	SecretGenerator *secret.Generator
	GameController  *game.Controller
	AuthService     *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// GameConfig holds the game timing rules (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return newWithDependencies(store, clock.New(), random.New(), registry, cfg.GameConfig, cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	registry *prometheus.Registry,
	gameCfg game.Config,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	if gameCfg.GameOverTime == 0 {
		gameCfg = game.DefaultConfig()
	}
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	collector := metrics.NewCollector(registry)
	generator := secret.New(rnd)
	gameController := game.NewController(store, generator, clk, gameCfg, collector, logger)
	authService := auth.New(store, clk, rnd, authCfg, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Registry:        registry,
		Metrics:         collector,
		SecretGenerator: generator,
		GameController:  gameController,
		AuthService:     authService,
	}
}

// Close releases the storage backend if it holds connections
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
