package model

import (
	"strconv"
	"time"
)

// GameID uniquely identifies a game session. IDs are allocated from a
// storage sequence and are never reused.
type GameID int64

// String returns the decimal form used in URLs and storage keys
func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseGameID parses a decimal game id
func ParseGameID(s string) (GameID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrGameNotFound
	}
	return GameID(n), nil
}

// GameState represents the lifecycle phase of a game
type GameState string

const (
	GameStateActive   GameState = "active"
	GameStateWon      GameState = "won"
	GameStateTimedOut GameState = "timed_out"
)

// SecretLength is the number of digits in every secret and guess
const SecretLength = 4

// GameSession is a single toros y vacas game
type GameSession struct {
	ID       GameID
	Owner    string
	OwnerAge int

	Secret       string
	AttemptCount int
	GuessHistory []string

	IsOver  bool
	Outcome GameState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State returns the current lifecycle state
func (g *GameSession) State() GameState {
	if !g.IsOver || g.Outcome == "" {
		return GameStateActive
	}
	return g.Outcome
}

// ElapsedMinutes returns whole minutes since creation
func (g *GameSession) ElapsedMinutes(now time.Time) int {
	d := now.Sub(g.CreatedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// GuessAt returns the guess recorded at a 1-based attempt index
func (g *GameSession) GuessAt(attempt int) (string, bool) {
	if attempt < 1 || attempt > len(g.GuessHistory) {
		return "", false
	}
	return g.GuessHistory[attempt-1], true
}

// Clone returns a deep copy safe to mutate independently
func (g *GameSession) Clone() *GameSession {
	c := *g
	c.GuessHistory = append([]string(nil), g.GuessHistory...)
	return &c
}

// Score is the feedback for one guess
type Score struct {
	Bulls int
	Cows  int
}

// RankEntry is one row of the leaderboard
type RankEntry struct {
	Position        int
	GameID          GameID
	Owner           string
	IsOver          bool
	AttemptCount    int
	ElapsedMinutes  int
	EvaluationScore float64
}
