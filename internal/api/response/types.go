package response

import (
	"time"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/game"
)

// CreateGameResponse is the response for POST /game/create
type CreateGameResponse struct {
	GameID int64 `json:"game_id"`
}

// GuessProgress is the response for a scored guess that did not win
type GuessProgress struct {
	Combination    string  `json:"combination"`
	Toros          int     `json:"toros"`
	Vacas          int     `json:"vacas"`
	Intentos       int     `json:"intentos"`
	TiempoRestante int     `json:"tiempo_restante"`
	Evaluacion     float64 `json:"evaluacion"`
	Ranking        int     `json:"ranking"`
}

// GuessWin is the response for the winning guess
type GuessWin struct {
	Combination string `json:"combination"`
	Toros       int    `json:"toros"`
	Vacas       int    `json:"vacas"`
	Message     string `json:"message"`
	Secret      string `json:"secret"`
}

// WinMessage accompanies a winning guess
const WinMessage = "You win!"

// GuessFromOutcome converts a game outcome into its response body
func GuessFromOutcome(o *game.GuessOutcome) any {
	if o.Won {
		return GuessWin{
			Combination: o.Combination,
			Toros:       o.Score.Bulls,
			Vacas:       o.Score.Cows,
			Message:     WinMessage,
			Secret:      o.Secret,
		}
	}
	return GuessProgress{
		Combination:    o.Combination,
		Toros:          o.Score.Bulls,
		Vacas:          o.Score.Cows,
		Intentos:       o.Attempts,
		TiempoRestante: o.RemainingMinutes,
		Evaluacion:     o.EvaluationScore,
		Ranking:        o.RankPosition,
	}
}

// PreviousResponse is the response for GET /game/{id}/previous-response/{n}
type PreviousResponse struct {
	Combination string `json:"combination"`
	Toros       int    `json:"toros"`
	Vacas       int    `json:"vacas"`
}

// PreviousFromModel converts a game.PreviousResponse
func PreviousFromModel(p *game.PreviousResponse) PreviousResponse {
	return PreviousResponse{
		Combination: p.Combination,
		Toros:       p.Score.Bulls,
		Vacas:       p.Score.Cows,
	}
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// Game is the public view of a session. The secret is only included once
// the game is over.
type Game struct {
	GameID       int64     `json:"game_id"`
	User         string    `json:"user"`
	Age          int       `json:"age"`
	Intentos     int       `json:"intentos"`
	Combinations []string  `json:"combinations"`
	GameOver     bool      `json:"game_over"`
	State        string    `json:"state"`
	Secret       string    `json:"secret,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// GameFromModel converts a model.GameSession
func GameFromModel(g *model.GameSession) Game {
	resp := Game{
		GameID:       int64(g.ID),
		User:         g.Owner,
		Age:          g.OwnerAge,
		Intentos:     g.AttemptCount,
		Combinations: append([]string{}, g.GuessHistory...),
		GameOver:     g.IsOver,
		State:        string(g.State()),
		CreatedAt:    g.CreatedAt,
	}
	if g.IsOver {
		resp.Secret = g.Secret
	}
	return resp
}

// RankEntry is one leaderboard row
type RankEntry struct {
	Position       int     `json:"position"`
	GameID         int64   `json:"game_id"`
	User           string  `json:"user"`
	GameOver       bool    `json:"game_over"`
	Intentos       int     `json:"intentos"`
	ElapsedMinutes int     `json:"elapsed_minutes"`
	Evaluacion     float64 `json:"evaluacion"`
}

// RankingResponse is the response for GET /game/ranking
type RankingResponse struct {
	Ranking []RankEntry `json:"ranking"`
}

// RankingFromModel converts ranked entries
func RankingFromModel(entries []model.RankEntry) RankingResponse {
	resp := RankingResponse{Ranking: make([]RankEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Ranking = append(resp.Ranking, RankEntry{
			Position:       e.Position,
			GameID:         int64(e.GameID),
			User:           e.Owner,
			GameOver:       e.IsOver,
			Intentos:       e.AttemptCount,
			ElapsedMinutes: e.ElapsedMinutes,
			Evaluacion:     e.EvaluationScore,
		})
	}
	return resp
}

// User represents an account in API responses
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserFromModel converts a model.User
func UserFromModel(u *model.User) User {
	return User{
		ID:    string(u.ID),
		Name:  u.Name,
		Email: u.Email,
	}
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
