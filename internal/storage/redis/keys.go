package redis

import (
	"fmt"
	"strings"

	"github.com/mcoot/torosvacas/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "toros"

// gameSequenceKey is the INCR counter that allocates game ids
func gameSequenceKey() string {
	return keyPrefix + ":seq:game"
}

// gamesKey is the HASH of game id -> encoded session. Holding every session in
// one hash lets HGETALL return a consistent snapshot for ranking.
func gamesKey() string {
	return keyPrefix + ":games"
}

// secretIndexKey is the HASH of secret -> number of sessions using it
func secretIndexKey() string {
	return keyPrefix + ":idx:secrets"
}

func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(email))
}

func authSessionKey(token string) string {
	return fmt.Sprintf("%s:auth_session:%s", keyPrefix, token)
}
