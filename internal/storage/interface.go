package storage

import (
	"context"

	"github.com/mcoot/torosvacas/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	//
	// CreateGame assigns the next id to game and persists it.
	CreateGame(ctx context.Context, game *model.GameSession) error
	SaveGame(ctx context.Context, game *model.GameSession) error
	GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns every session as of a single instant, ordered by id.
	ListGames(ctx context.Context) ([]*model.GameSession, error)
	// SecretInUse reports whether any stored session has the given secret.
	SecretInUse(ctx context.Context, secret string) (bool, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Auth session operations
	SaveAuthSession(ctx context.Context, session *model.AuthSession) error
	GetAuthSession(ctx context.Context, token string) (*model.AuthSession, error)
	DeleteAuthSession(ctx context.Context, token string) error
}
