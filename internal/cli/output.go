package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateGameResult:
		fmt.Printf("Game created: %d\n", v.GameID)
	case GuessResult:
		o.printGuess(v)
	case PreviousResult:
		fmt.Printf("%s: %d toros, %d vacas\n", v.Combination, v.Toros, v.Vacas)
	case GameView:
		o.printGame(v)
	case Ranking:
		o.printRanking(v)
	case User:
		fmt.Printf("User: %s <%s> (%s)\n", v.Name, v.Email, v.ID)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CreateGameResult response type
type CreateGameResult struct {
	GameID int64 `json:"game_id"`
}

// GuessResult covers both the progress and the winning response
type GuessResult struct {
	Combination    string  `json:"combination"`
	Toros          int     `json:"toros"`
	Vacas          int     `json:"vacas"`
	Intentos       int     `json:"intentos,omitempty"`
	TiempoRestante int     `json:"tiempo_restante,omitempty"`
	Evaluacion     float64 `json:"evaluacion,omitempty"`
	Ranking        int     `json:"ranking,omitempty"`
	Message        string  `json:"message,omitempty"`
	Secret         string  `json:"secret,omitempty"`
}

// PreviousResult response type
type PreviousResult struct {
	Combination string `json:"combination"`
	Toros       int    `json:"toros"`
	Vacas       int    `json:"vacas"`
}

// GameView response type
type GameView struct {
	GameID       int64    `json:"game_id"`
	User         string   `json:"user"`
	Age          int      `json:"age"`
	Intentos     int      `json:"intentos"`
	Combinations []string `json:"combinations"`
	GameOver     bool     `json:"game_over"`
	State        string   `json:"state"`
	Secret       string   `json:"secret,omitempty"`
}

// RankEntry response type
type RankEntry struct {
	Position       int     `json:"position"`
	GameID         int64   `json:"game_id"`
	User           string  `json:"user"`
	GameOver       bool    `json:"game_over"`
	Intentos       int     `json:"intentos"`
	ElapsedMinutes int     `json:"elapsed_minutes"`
	Evaluacion     float64 `json:"evaluacion"`
}

// Ranking response type
type Ranking struct {
	Ranking []RankEntry `json:"ranking"`
}

// User response type
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGuess(g GuessResult) {
	fmt.Printf("%s: %d toros, %d vacas\n", g.Combination, g.Toros, g.Vacas)
	if g.Secret != "" {
		fmt.Printf("%s The secret was %s\n", g.Message, g.Secret)
		return
	}
	fmt.Printf("Attempts: %d\n", g.Intentos)
	fmt.Printf("Minutes left: %d\n", g.TiempoRestante)
	fmt.Printf("Score: %.1f (rank %d)\n", g.Evaluacion, g.Ranking)
}

func (o *Output) printGame(g GameView) {
	fmt.Printf("Game: %d\n", g.GameID)
	fmt.Printf("Player: %s (%d)\n", g.User, g.Age)
	fmt.Printf("State: %s\n", g.State)
	fmt.Printf("Attempts: %d\n", g.Intentos)
	if g.Secret != "" {
		fmt.Printf("Secret: %s\n", g.Secret)
	}
	for i, c := range g.Combinations {
		fmt.Printf("  %d. %s\n", i+1, c)
	}
}

func (o *Output) printRanking(r Ranking) {
	if len(r.Ranking) == 0 {
		fmt.Println("No games yet")
		return
	}
	fmt.Printf("%-4s %-8s %-16s %-9s %-8s %s\n", "#", "GAME", "PLAYER", "ATTEMPTS", "MINUTES", "SCORE")
	for _, e := range r.Ranking {
		marker := ""
		if e.GameOver {
			marker = " *"
		}
		fmt.Printf("%-4d %-8d %-16s %-9d %-8d %.1f%s\n",
			e.Position, e.GameID, e.User, e.Intentos, e.ElapsedMinutes, e.Evaluacion, marker)
	}
}
