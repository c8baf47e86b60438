package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// gameRecord is the persisted form of a GameSession
type gameRecord struct {
	ID           int64     `json:"id"`
	Owner        string    `json:"user"`
	OwnerAge     int       `json:"age"`
	Secret       string    `json:"secret_number"`
	AttemptCount int       `json:"attempt_number"`
	GuessHistory []string  `json:"previous_responses"`
	IsOver       bool      `json:"game_over"`
	Outcome      string    `json:"outcome"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func encodeGame(g *model.GameSession) ([]byte, error) {
	data, err := json.Marshal(gameRecord{
		ID:           int64(g.ID),
		Owner:        g.Owner,
		OwnerAge:     g.OwnerAge,
		Secret:       g.Secret,
		AttemptCount: g.AttemptCount,
		GuessHistory: g.GuessHistory,
		IsOver:       g.IsOver,
		Outcome:      string(g.Outcome),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEncoding, err)
	}
	return data, nil
}

func decodeGame(data []byte) (*model.GameSession, error) {
	var rec gameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEncoding, err)
	}
	return &model.GameSession{
		ID:           model.GameID(rec.ID),
		Owner:        rec.Owner,
		OwnerAge:     rec.OwnerAge,
		Secret:       rec.Secret,
		AttemptCount: rec.AttemptCount,
		GuessHistory: rec.GuessHistory,
		IsOver:       rec.IsOver,
		Outcome:      model.GameState(rec.Outcome),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.GameSession) error {
	id, err := s.client.Incr(ctx, gameSequenceKey()).Result()
	if err != nil {
		return err
	}
	game.ID = model.GameID(id)

	data, err := encodeGame(game)
	if err != nil {
		return err
	}

	// Save + index update in one transaction
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, gamesKey(), game.ID.String(), data)
	pipe.HIncrBy(ctx, secretIndexKey(), game.Secret, 1)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveGame(ctx context.Context, game *model.GameSession) error {
	data, err := encodeGame(game)
	if err != nil {
		return err
	}

	prev, err := s.GetGame(ctx, game.ID)
	if err != nil && !errors.Is(err, model.ErrGameNotFound) {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, gamesKey(), game.ID.String(), data)
	switch {
	case prev == nil:
		pipe.HIncrBy(ctx, secretIndexKey(), game.Secret, 1)
	case prev.Secret != game.Secret:
		pipe.HIncrBy(ctx, secretIndexKey(), prev.Secret, -1)
		pipe.HIncrBy(ctx, secretIndexKey(), game.Secret, 1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	data, err := s.client.HGet(ctx, gamesKey(), id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return decodeGame(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, gamesKey(), id.String())
	pipe.HIncrBy(ctx, secretIndexKey(), game.Secret, -1)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.GameSession, error) {
	// HGETALL is a single command, so the result is one consistent instant
	values, err := s.client.HGetAll(ctx, gamesKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.GameSession, 0, len(values))
	for _, v := range values {
		game, err := decodeGame([]byte(v))
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) SecretInUse(ctx context.Context, secret string) (bool, error) {
	count, err := s.client.HGet(ctx, secretIndexKey(), secret).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(id))
}

// Auth session operations

func (s *Storage) SaveAuthSession(ctx context.Context, session *model.AuthSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = s.cfg.SessionTTL
	}
	return s.client.Set(ctx, authSessionKey(session.Token), data, ttl).Err()
}

func (s *Storage) GetAuthSession(ctx context.Context, token string) (*model.AuthSession, error) {
	data, err := s.client.Get(ctx, authSessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteAuthSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, authSessionKey(token)).Err()
}
