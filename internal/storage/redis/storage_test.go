package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/torosvacas/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame(secret string) *model.GameSession {
	game := &model.GameSession{
		Owner:     "John Doe",
		OwnerAge:  30,
		Secret:    secret,
		Outcome:   model.GameStateActive,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))
	return game
}

// Game tests

func (s *StorageSuite) TestCreateGameUsesSequence() {
	first := s.newGame("1234")
	second := s.newGame("5678")

	s.Equal(model.GameID(1), first.ID)
	s.Equal(model.GameID(2), second.ID)
	s.Equal("2", s.mustGet(gameSequenceKey()))
}

func (s *StorageSuite) mustGet(key string) string {
	v, err := s.mini.Get(key)
	s.Require().NoError(err)
	return v
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame("1234")
	game.GuessHistory = []string{"1111", "2222"}
	game.AttemptCount = 2
	game.IsOver = true
	game.Outcome = model.GameStateWon

	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.Owner, retrieved.Owner)
	s.Equal(30, retrieved.OwnerAge)
	s.Equal("1234", retrieved.Secret)
	s.Equal([]string{"1111", "2222"}, retrieved.GuessHistory)
	s.Equal(2, retrieved.AttemptCount)
	s.True(retrieved.IsOver)
	s.Equal(model.GameStateWon, retrieved.Outcome)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, 42)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameCorruptRecord() {
	s.mini.HSet(gamesKey(), "7", "{not json")

	_, err := s.storage.GetGame(s.ctx, 7)
	s.ErrorIs(err, model.ErrEncoding)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.newGame("1234")

	s.Require().NoError(s.storage.DeleteGame(s.ctx, game.ID))

	_, err := s.storage.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	inUse, err := s.storage.SecretInUse(s.ctx, "1234")
	s.Require().NoError(err)
	s.False(inUse)
}

func (s *StorageSuite) TestDeleteMissingGameIsNoop() {
	s.NoError(s.storage.DeleteGame(s.ctx, 99))
}

func (s *StorageSuite) TestListGames() {
	s.newGame("1111")
	s.newGame("2222")
	s.newGame("3333")

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID(1), games[0].ID)
	s.Equal(model.GameID(3), games[2].ID)
	s.Equal("3333", games[2].Secret)
}

func (s *StorageSuite) TestListGamesEmpty() {
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestSecretIndex() {
	a := s.newGame("1234")
	s.newGame("1234")

	inUse, err := s.storage.SecretInUse(s.ctx, "1234")
	s.Require().NoError(err)
	s.True(inUse)

	s.Require().NoError(s.storage.DeleteGame(s.ctx, a.ID))
	inUse, err = s.storage.SecretInUse(s.ctx, "1234")
	s.Require().NoError(err)
	s.True(inUse)

	inUse, err = s.storage.SecretInUse(s.ctx, "0000")
	s.Require().NoError(err)
	s.False(inUse)
}

func (s *StorageSuite) TestSaveGameIndexesNewSessions() {
	game := &model.GameSession{ID: 10, Secret: "4444"}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	inUse, err := s.storage.SecretInUse(s.ctx, "4444")
	s.Require().NoError(err)
	s.True(inUse)

	// saving again does not double count
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, 10))
	inUse, _ = s.storage.SecretInUse(s.ctx, "4444")
	s.False(inUse)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "u_1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("alice@example.com", retrieved.Email)

	byEmail, err := s.storage.GetUserByEmail(s.ctx, "Alice@Example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), byEmail.ID)
}

func (s *StorageSuite) TestGetUserByEmailNotFound() {
	_, err := s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Auth session tests

func (s *StorageSuite) TestAuthSessionHasTTL() {
	session := &model.AuthSession{Token: "tok", UserID: "u_1", ExpiresAt: time.Now().Add(2 * time.Hour)}
	s.Require().NoError(s.storage.SaveAuthSession(s.ctx, session))

	ttl := s.mini.TTL(authSessionKey("tok"))
	s.True(ttl > time.Hour, "session TTL should follow expiry")

	retrieved, err := s.storage.GetAuthSession(s.ctx, "tok")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.UserID)
}

func (s *StorageSuite) TestAuthSessionExpires() {
	session := &model.AuthSession{Token: "tok", UserID: "u_1", ExpiresAt: time.Now().Add(time.Minute)}
	s.Require().NoError(s.storage.SaveAuthSession(s.ctx, session))

	s.mini.FastForward(2 * time.Minute)

	_, err := s.storage.GetAuthSession(s.ctx, "tok")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteAuthSession() {
	session := &model.AuthSession{Token: "tok", UserID: "u_1", ExpiresAt: time.Now().Add(time.Hour)}
	s.Require().NoError(s.storage.SaveAuthSession(s.ctx, session))

	s.Require().NoError(s.storage.DeleteAuthSession(s.ctx, "tok"))

	_, err := s.storage.GetAuthSession(s.ctx, "tok")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
