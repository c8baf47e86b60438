package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/torosvacas/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newGame(secret string) *model.GameSession {
	game := &model.GameSession{
		Owner:     "John Doe",
		OwnerAge:  30,
		Secret:    secret,
		Outcome:   model.GameStateActive,
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))
	return game
}

// Game tests

func (s *StorageSuite) TestCreateGameAssignsSequentialIDs() {
	first := s.newGame("1234")
	second := s.newGame("5678")

	s.Equal(model.GameID(1), first.ID)
	s.Equal(model.GameID(2), second.ID)
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame("1234")
	game.GuessHistory = append(game.GuessHistory, "1111")
	game.AttemptCount = 1
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("1234", retrieved.Secret)
	s.Equal([]string{"1111"}, retrieved.GuessHistory)
	s.Equal(1, retrieved.AttemptCount)
}

func (s *StorageSuite) TestGetGameReturnsCopy() {
	game := s.newGame("1234")

	retrieved, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	retrieved.GuessHistory = append(retrieved.GuessHistory, "9999")
	retrieved.IsOver = true

	again, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(again.GuessHistory)
	s.False(again.IsOver)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, 99)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.newGame("1234")

	s.Require().NoError(s.storage.DeleteGame(s.ctx, game.ID))

	_, err := s.storage.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeletedIDsAreNotReused() {
	game := s.newGame("1234")
	s.Require().NoError(s.storage.DeleteGame(s.ctx, game.ID))

	next := s.newGame("5678")
	s.Equal(model.GameID(2), next.ID)
}

func (s *StorageSuite) TestListGamesOrderedByID() {
	s.newGame("1111")
	s.newGame("2222")
	s.newGame("3333")

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	for i, g := range games {
		s.Equal(model.GameID(i+1), g.ID)
	}
}

func (s *StorageSuite) TestSecretInUse() {
	a := s.newGame("1234")
	s.newGame("1234")

	inUse, err := s.storage.SecretInUse(s.ctx, "1234")
	s.Require().NoError(err)
	s.True(inUse)

	inUse, err = s.storage.SecretInUse(s.ctx, "4321")
	s.Require().NoError(err)
	s.False(inUse)

	// still referenced by the second game
	s.Require().NoError(s.storage.DeleteGame(s.ctx, a.ID))
	inUse, _ = s.storage.SecretInUse(s.ctx, "1234")
	s.True(inUse)
}

func (s *StorageSuite) TestSecretReleasedOnDelete() {
	game := s.newGame("1234")
	s.Require().NoError(s.storage.DeleteGame(s.ctx, game.ID))

	inUse, err := s.storage.SecretInUse(s.ctx, "1234")
	s.Require().NoError(err)
	s.False(inUse)
}

func (s *StorageSuite) TestConcurrentCreateGame() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.storage.CreateGame(s.ctx, &model.GameSession{Secret: "1234"})
		}()
	}
	wg.Wait()

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 50)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "u_1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.Name)

	byEmail, err := s.storage.GetUserByEmail(s.ctx, "ALICE@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), byEmail.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Auth session tests

func (s *StorageSuite) TestAuthSessionLifecycle() {
	session := &model.AuthSession{Token: "tok", UserID: "u_1", ExpiresAt: time.Now().Add(time.Hour)}
	s.Require().NoError(s.storage.SaveAuthSession(s.ctx, session))

	retrieved, err := s.storage.GetAuthSession(s.ctx, "tok")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.UserID)

	s.Require().NoError(s.storage.DeleteAuthSession(s.ctx, "tok"))
	_, err = s.storage.GetAuthSession(s.ctx, "tok")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
