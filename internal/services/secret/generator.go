// Package secret produces the hidden combination for new games.
package secret

import (
	"strings"

	"github.com/mcoot/torosvacas/internal/dependencies/random"
)

// Generator produces fixed-width numeric secrets
type Generator struct {
	random random.Random
}

// New creates a Generator drawing from the given source
func New(random random.Random) *Generator {
	return &Generator{random: random}
}

// Generate returns a string of exactly digits decimal characters. Digits may
// repeat. The first digit is never '0', so the result is uniform over
// [10^(digits-1), 10^digits - 1].
func (g *Generator) Generate(digits int) string {
	if digits <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(digits)
	b.WriteByte(byte('1' + g.random.Intn(9)))
	for i := 1; i < digits; i++ {
		b.WriteByte(byte('0' + g.random.Intn(10)))
	}
	return b.String()
}
