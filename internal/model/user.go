package model

import "time"

// UserID uniquely identifies an account
type UserID string

// User is an account that can log in to manage games
type User struct {
	ID           UserID
	Name         string
	Email        string // login identifier (immutable, lowercased)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthSession is an authenticated login session
type AuthSession struct {
	Token     string
	UserID    UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}
