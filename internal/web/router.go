package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/torosvacas/internal/metrics"
	sharedmw "github.com/mcoot/torosvacas/internal/middleware"
	"github.com/mcoot/torosvacas/internal/services/auth"
	"github.com/mcoot/torosvacas/internal/services/game"
	"github.com/mcoot/torosvacas/internal/web/handler"
	"github.com/mcoot/torosvacas/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	Metrics        metrics.Recorder
}

// NewRouter creates the HTML router for the ranking pages
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register adds the web pages to an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.GameController, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(sharedmw.RequestID)
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(sharedmw.Logging(cfg.Logger, cfg.Metrics))
	pages.Use(middleware.OptionalAuth(cfg.AuthService))

	pages.Handle("/", http.RedirectHandler("/leaderboard", http.StatusFound)).Methods(http.MethodGet)
	pages.HandleFunc("/leaderboard", leaderboardHandler.Leaderboard).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}", leaderboardHandler.Game).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	pages.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
}
