package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/torosvacas/internal/api/handler"
	apimw "github.com/mcoot/torosvacas/internal/api/middleware"
	"github.com/mcoot/torosvacas/internal/api/response"
	"github.com/mcoot/torosvacas/internal/metrics"
	"github.com/mcoot/torosvacas/internal/middleware"
	"github.com/mcoot/torosvacas/internal/services/auth"
	"github.com/mcoot/torosvacas/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	// Metrics records request metrics (optional)
	Metrics metrics.Recorder
	// MetricsHandler serves /metrics (optional)
	MetricsHandler http.Handler
	// RateLimiter throttles game and auth routes (optional)
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates the JSON API router. Every route is served at the root
// and again under /api.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = apimw.NotFound()
	r.MethodNotAllowedHandler = apimw.MethodNotAllowed()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	// Create middleware
	authMiddleware := apimw.Auth(cfg.AuthService)

	r.Use(middleware.RequestID)
	r.Use(apimw.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler).Methods(http.MethodGet)
	}

	for _, base := range []*mux.Router{r, r.PathPrefix("/api").Subrouter()} {
		// Not rate limited
		base.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

		routes := base.NewRoute().Subrouter()
		if cfg.RateLimiter != nil {
			routes.Use(cfg.RateLimiter.Middleware)
		}

		// Auth routes
		routes.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
		routes.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
		routes.Handle("/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout))).Methods(http.MethodPost)
		routes.Handle("/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

		// Game routes; /game/ranking must precede /game/{id}
		routes.HandleFunc("/game/create", gameHandler.Create).Methods(http.MethodPost)
		routes.HandleFunc("/game/ranking", gameHandler.Ranking).Methods(http.MethodGet)
		routes.HandleFunc("/game/{id}/propose", gameHandler.Propose).Methods(http.MethodPost)
		routes.Handle("/game/{id}/deleteGame", authMiddleware(http.HandlerFunc(gameHandler.Delete))).Methods(http.MethodDelete)
		routes.HandleFunc("/game/{id}/previous-response/{attempt}", gameHandler.PreviousResponse).Methods(http.MethodGet)
		routes.HandleFunc("/game/{id}", gameHandler.Get).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
