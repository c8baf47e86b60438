// Package evaluation scores a guessed combination against a secret.
package evaluation

import (
	"strings"

	"github.com/mcoot/torosvacas/internal/model"
)

// Evaluate counts toros (right digit, right position) and vacas (digit present
// elsewhere in the secret). Vacas are not deduplicated: every mismatched guess
// digit that occurs anywhere in the secret counts once, so repeated digits can
// push toros+vacas above the combination length.
//
// Both arguments must satisfy ValidCombination.
func Evaluate(secret, guess string) model.Score {
	var score model.Score
	for i := 0; i < len(guess) && i < len(secret); i++ {
		switch {
		case secret[i] == guess[i]:
			score.Bulls++
		case strings.IndexByte(secret, guess[i]) >= 0:
			score.Cows++
		}
	}
	return score
}

// ValidCombination reports whether s is exactly model.SecretLength ASCII digits
func ValidCombination(s string) bool {
	if len(s) != model.SecretLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
