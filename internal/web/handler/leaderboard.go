package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/evaluation"
	"github.com/mcoot/torosvacas/internal/services/game"
	"github.com/mcoot/torosvacas/internal/web/middleware"
	"github.com/mcoot/torosvacas/internal/web/templates/layout"
	"github.com/mcoot/torosvacas/internal/web/templates/pages"
)

// LeaderboardHandler serves the read-only game pages
type LeaderboardHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(gameController game.ControllerInterface, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Leaderboard renders the ranking of every session
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gameController.Leaderboard(r.Context())
	if err != nil {
		h.logger.Error("failed to rank games", slog.String("error", err.Error()))
		renderError(w, r, h.logger, http.StatusInternalServerError, "The ranking is unavailable right now.")
		return
	}

	render(w, r, h.logger, http.StatusOK, pages.Leaderboard(pages.LeaderboardData{
		PageData: layout.PageData{
			Title: "Ranking",
			User:  middleware.GetUser(r.Context()),
		},
		Entries: entries,
	}))
}

// Game renders one session and its scored guesses
func (h *LeaderboardHandler) Game(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseGameID(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, h.logger, http.StatusNotFound, "Game not found.")
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			renderError(w, r, h.logger, http.StatusNotFound, "Game not found.")
			return
		}
		h.logger.Error("failed to load game",
			slog.String("game_id", id.String()),
			slog.String("error", err.Error()),
		)
		renderError(w, r, h.logger, http.StatusInternalServerError, "The game is unavailable right now.")
		return
	}

	rows := make([]pages.GuessRow, 0, len(g.GuessHistory))
	for i, combination := range g.GuessHistory {
		rows = append(rows, pages.GuessRow{
			Attempt:     i + 1,
			Combination: combination,
			Score:       evaluation.Evaluate(g.Secret, combination),
		})
	}

	render(w, r, h.logger, http.StatusOK, pages.Game(pages.GameData{
		PageData: layout.PageData{
			Title: "Game " + g.ID.String(),
			User:  middleware.GetUser(r.Context()),
		},
		Game: g,
		Rows: rows,
	}))
}
