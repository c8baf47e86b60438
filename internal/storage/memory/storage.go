package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers never share state
// with the store.
type Storage struct {
	mu sync.RWMutex

	nextGameID model.GameID
	games      map[model.GameID]*model.GameSession
	secrets    map[string]int

	users        map[model.UserID]*model.User
	emailIndex   map[string]model.UserID
	authSessions map[string]*model.AuthSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:        make(map[model.GameID]*model.GameSession),
		secrets:      make(map[string]int),
		users:        make(map[model.UserID]*model.User),
		emailIndex:   make(map[string]model.UserID),
		authSessions: make(map[string]*model.AuthSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGameID++
	game.ID = s.nextGameID
	s.putGame(game)
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID > s.nextGameID {
		s.nextGameID = game.ID
	}
	s.putGame(game)
	return nil
}

// putGame stores a copy of game and keeps the secret index in step.
// Caller holds the write lock.
func (s *Storage) putGame(game *model.GameSession) {
	if prev, ok := s.games[game.ID]; ok {
		s.releaseSecret(prev.Secret)
	}
	s.games[game.ID] = game.Clone()
	s.secrets[game.Secret]++
}

func (s *Storage) releaseSecret(secret string) {
	if s.secrets[secret] <= 1 {
		delete(s.secrets, secret)
		return
	}
	s.secrets[secret]--
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil
	}
	s.releaseSecret(game.Secret)
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.GameSession, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g.Clone())
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) SecretInUse(ctx context.Context, secret string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secrets[secret] > 0, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[u.ID] = &u
	s.emailIndex[strings.ToLower(u.Email)] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Auth session operations

func (s *Storage) SaveAuthSession(ctx context.Context, session *model.AuthSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.authSessions[sess.Token] = &sess
	return nil
}

func (s *Storage) GetAuthSession(ctx context.Context, token string) (*model.AuthSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.authSessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Storage) DeleteAuthSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.authSessions, token)
	return nil
}
