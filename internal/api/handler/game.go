package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/torosvacas/internal/api/middleware"
	"github.com/mcoot/torosvacas/internal/api/request"
	"github.com/mcoot/torosvacas/internal/api/response"
	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Create handles POST /game/create
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	owner, age, err := req.Validate()
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), owner, age)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{GameID: int64(g.ID)})
}

// Propose handles POST /game/{id}/propose
func (h *GameHandler) Propose(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ProposeRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.gameController.SubmitGuess(r.Context(), id, req.Guess())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessFromOutcome(outcome))
}

// Delete handles DELETE /game/{id}/deleteGame
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.gameController.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("game deleted via api",
		slog.String("game_id", id.String()),
		slog.String("user_id", string(user.ID)),
	)
	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Game deleted successfully"})
}

// PreviousResponse handles GET /game/{id}/previous-response/{attempt}
func (h *GameHandler) PreviousResponse(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	attempt, err := strconv.Atoi(mux.Vars(r)["attempt"])
	if err != nil {
		WriteError(w, model.ErrInvalidAttempt)
		return
	}

	prev, err := h.gameController.GetPreviousResponse(r.Context(), id, attempt)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PreviousFromModel(prev))
}

// Get handles GET /game/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Ranking handles GET /game/ranking
func (h *GameHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gameController.Leaderboard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingFromModel(entries))
}

// gameID parses the {id} path variable. Malformed ids cannot name a game.
func gameID(r *http.Request) (model.GameID, error) {
	return model.ParseGameID(mux.Vars(r)["id"])
}
