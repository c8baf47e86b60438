package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/torosvacas/internal/dependencies/clock"
	"github.com/mcoot/torosvacas/internal/metrics"
	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/evaluation"
	"github.com/mcoot/torosvacas/internal/services/ranking"
	"github.com/mcoot/torosvacas/internal/services/secret"
	"github.com/mcoot/torosvacas/internal/storage"
)

// Config holds configuration for the game controller
type Config struct {
	// GameOverTime is how long a session accepts guesses after creation
	GameOverTime time.Duration
}

// DefaultConfig returns default game configuration
func DefaultConfig() Config {
	return Config{
		GameOverTime: 10 * time.Minute,
	}
}

// GuessOutcome is the result of a guess that did not fail.
// Won outcomes carry the revealed secret; progress outcomes carry the ranking.
type GuessOutcome struct {
	GameID      model.GameID
	Combination string
	Score       model.Score
	Won         bool
	Secret      string

	Attempts         int
	RemainingMinutes int
	EvaluationScore  float64
	RankPosition     int
}

// PreviousResponse is a recorded guess re-scored against the secret
type PreviousResponse struct {
	Attempt     int
	Combination string
	Score       model.Score
}

// Controller manages the game state machine and guess flow
type Controller struct {
	storage   storage.Storage
	generator *secret.Generator
	clock     clock.Clock
	metrics   metrics.Recorder
	logger    *slog.Logger
	cfg       Config
	locks     *keyedMutex
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	generator *secret.Generator,
	clock clock.Clock,
	cfg Config,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Controller {
	if cfg.GameOverTime <= 0 {
		cfg.GameOverTime = DefaultConfig().GameOverTime
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Controller{
		storage:   storage,
		generator: generator,
		clock:     clock,
		metrics:   recorder,
		logger:    logger,
		cfg:       cfg,
		locks:     newKeyedMutex(),
	}
}

// CreateGame starts a new session with a fresh secret
func (c *Controller) CreateGame(ctx context.Context, owner string, ownerAge int) (*model.GameSession, error) {
	verr := model.NewValidationError()
	if owner == "" {
		verr.Add("user", "The user field is required.")
	}
	if ownerAge < 0 {
		verr.Add("age", "The age field must be at least 0.")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.GameSession{
		Owner:        owner,
		OwnerAge:     ownerAge,
		Secret:       c.generator.Generate(model.SecretLength),
		GuessHistory: []string{},
		Outcome:      model.GameStateActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("owner", owner),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.metrics.RecordGameCreated()
	c.logger.Info("game created",
		slog.String("game_id", game.ID.String()),
		slog.String("owner", owner),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	return c.storage.GetGame(ctx, id)
}

// SubmitGuess scores a guess against the session's secret. A nil guess is
// treated as missing. Steps run in a fixed order: lookup, validation,
// terminal check, history append, duplicate check, timeout, scoring.
func (c *Controller) SubmitGuess(ctx context.Context, id model.GameID, guess *string) (*GuessOutcome, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if guess == nil || !evaluation.ValidCombination(*guess) {
		verr := model.NewValidationError()
		if guess == nil {
			verr.Add("combination", "The combination field is required.")
		} else {
			verr.Add("combination", "The combination field must be 4 digits.")
		}
		c.metrics.RecordGuess(metrics.OutcomeRejected)
		return nil, verr
	}
	combination := *guess

	if game.IsOver {
		c.metrics.RecordGuess(metrics.OutcomeRejected)
		return nil, model.ErrGameOver
	}

	now := c.clock.Now()
	game.GuessHistory = append(game.GuessHistory, combination)
	game.UpdatedAt = now

	duplicate, err := c.isDuplicate(ctx, game, combination)
	if err != nil {
		return nil, err
	}
	if duplicate {
		game.AttemptCount++
		if err := c.save(ctx, game); err != nil {
			return nil, err
		}
		c.metrics.RecordGuess(metrics.OutcomeDuplicate)
		c.logger.Info("duplicate guess",
			slog.String("game_id", id.String()),
			slog.Int("attempts", game.AttemptCount),
		)
		return nil, model.ErrDuplicateGuess
	}

	elapsed := game.ElapsedMinutes(now)
	if time.Duration(elapsed)*time.Minute >= c.cfg.GameOverTime {
		c.finish(game, model.GameStateTimedOut)
		if err := c.save(ctx, game); err != nil {
			return nil, err
		}
		c.metrics.RecordGuess(metrics.OutcomeTimedOut)
		c.logger.Info("game timed out",
			slog.String("game_id", id.String()),
			slog.Int("elapsed_minutes", elapsed),
		)
		return nil, &model.TimeoutError{Secret: game.Secret}
	}

	score := evaluation.Evaluate(game.Secret, combination)
	if score.Bulls == model.SecretLength {
		c.finish(game, model.GameStateWon)
		if err := c.save(ctx, game); err != nil {
			return nil, err
		}
		c.metrics.RecordGuess(metrics.OutcomeWon)
		c.logger.Info("game won",
			slog.String("game_id", id.String()),
			slog.Int("attempts", game.AttemptCount),
		)
		return &GuessOutcome{
			GameID:      id,
			Combination: combination,
			Score:       score,
			Won:         true,
			Secret:      game.Secret,
			Attempts:    game.AttemptCount,
		}, nil
	}

	game.AttemptCount++
	if err := c.save(ctx, game); err != nil {
		return nil, err
	}

	sessions, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	entries := ranking.Rank(sessions, now)
	c.metrics.RecordRankingSize(len(entries))
	c.metrics.RecordGuess(metrics.OutcomeProgress)

	return &GuessOutcome{
		GameID:           id,
		Combination:      combination,
		Score:            score,
		Attempts:         game.AttemptCount,
		RemainingMinutes: int(c.cfg.GameOverTime/time.Minute) - elapsed,
		EvaluationScore:  ranking.EvaluationScore(elapsed, game.AttemptCount),
		RankPosition:     ranking.Position(entries, id),
	}, nil
}

// GetPreviousResponse returns the guess made at a 1-based attempt number
func (c *Controller) GetPreviousResponse(ctx context.Context, id model.GameID, attempt int) (*PreviousResponse, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if attempt < 1 || attempt > game.AttemptCount {
		return nil, model.ErrInvalidAttempt
	}

	combination, ok := game.GuessAt(attempt)
	if !ok {
		return nil, model.ErrNoHistoryAtAttempt
	}

	return &PreviousResponse{
		Attempt:     attempt,
		Combination: combination,
		Score:       evaluation.Evaluate(game.Secret, combination),
	}, nil
}

// DeleteGame permanently removes a session
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	unlock := c.locks.Lock(id)
	defer unlock()

	if _, err := c.storage.GetGame(ctx, id); err != nil {
		return err
	}

	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	c.metrics.RecordGameDeleted()
	c.logger.Info("game deleted", slog.String("game_id", id.String()))
	return nil
}

// Leaderboard ranks every session as of now
func (c *Controller) Leaderboard(ctx context.Context) ([]model.RankEntry, error) {
	sessions, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(sessions, c.clock.Now()), nil
}

// isDuplicate reports whether guess is the secret of some other session.
// A guess equal to this session's own secret is a win, never a duplicate.
func (c *Controller) isDuplicate(ctx context.Context, game *model.GameSession, guess string) (bool, error) {
	if guess == game.Secret {
		return false, nil
	}
	return c.storage.SecretInUse(ctx, guess)
}

// finish moves a session into a terminal state
func (c *Controller) finish(game *model.GameSession, outcome model.GameState) {
	game.IsOver = true
	game.Outcome = outcome
}

func (c *Controller) save(ctx context.Context, game *model.GameSession) error {
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", game.ID.String()),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, model.ErrEncoding) {
			return err
		}
		return fmt.Errorf("saving game %s: %w", game.ID, err)
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, owner string, ownerAge int) (*model.GameSession, error)
	GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error)
	SubmitGuess(ctx context.Context, id model.GameID, guess *string) (*GuessOutcome, error)
	GetPreviousResponse(ctx context.Context, id model.GameID, attempt int) (*PreviousResponse, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	Leaderboard(ctx context.Context) ([]model.RankEntry, error)
}

var _ ControllerInterface = (*Controller)(nil)
