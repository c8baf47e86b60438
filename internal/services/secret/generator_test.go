package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/torosvacas/internal/dependencies/mocks"
	"github.com/mcoot/torosvacas/internal/dependencies/random"
)

func TestGenerateNeverLeadsWithZero(t *testing.T) {
	g := New(random.New())
	for i := 0; i < 2000; i++ {
		s := g.Generate(4)
		require.Len(t, s, 4)
		assert.NotEqual(t, byte('0'), s[0], "secret %q starts with zero", s)
		for _, ch := range s {
			assert.True(t, ch >= '0' && ch <= '9', "secret %q has non-digit", s)
		}
	}
}

func TestGenerateUsesQueuedDraws(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueDigits("1234")
	rnd.QueueDigits("9000")
	g := New(rnd)

	assert.Equal(t, "1234", g.Generate(4))
	assert.Equal(t, "9000", g.Generate(4))
}

func TestGenerateAllowsRepeatedDigits(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueDigits("1122")

	assert.Equal(t, "1122", New(rnd).Generate(4))
}

func TestGenerateDrainedSourceGivesSmallestSecret(t *testing.T) {
	g := New(mocks.NewMockRandom())
	assert.Equal(t, "1000", g.Generate(4))
}

func TestGenerateOtherWidths(t *testing.T) {
	g := New(random.New())
	assert.Len(t, g.Generate(1), 1)
	assert.Len(t, g.Generate(6), 6)
	assert.Empty(t, g.Generate(0))
}
