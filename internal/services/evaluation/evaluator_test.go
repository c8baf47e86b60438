package evaluation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/torosvacas/internal/model"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		secret, guess string
		want          model.Score
	}{
		{"1234", "1234", model.Score{Bulls: 4}},
		{"1234", "5678", model.Score{}},
		{"1234", "4321", model.Score{Cows: 4}},
		{"1234", "1243", model.Score{Bulls: 2, Cows: 2}},
		{"1234", "1567", model.Score{Bulls: 1}},
		{"1234", "5136", model.Score{Bulls: 1, Cows: 1}},
		// repeated guess digits each count as a vaca
		{"1234", "2222", model.Score{Bulls: 1, Cows: 3}},
		{"1122", "2211", model.Score{Cows: 4}},
		{"1122", "1212", model.Score{Bulls: 2, Cows: 2}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.secret, tt.guess), func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.secret, tt.guess))
		})
	}
}

func TestEvaluateExactMatchAlwaysFourBulls(t *testing.T) {
	for n := 1000; n <= 9999; n += 37 {
		s := fmt.Sprintf("%04d", n)
		assert.Equal(t, model.Score{Bulls: 4}, Evaluate(s, s), s)
	}
}

func TestEvaluateBullsInRange(t *testing.T) {
	secrets := []string{"1234", "1111", "9080", "5566"}
	guesses := []string{"0000", "1111", "4321", "6655", "9080"}
	for _, s := range secrets {
		for _, g := range guesses {
			score := Evaluate(s, g)
			assert.GreaterOrEqual(t, score.Bulls, 0)
			assert.LessOrEqual(t, score.Bulls, 4)
			assert.LessOrEqual(t, score.Cows, 4)
		}
	}
}

func TestValidCombination(t *testing.T) {
	assert.True(t, ValidCombination("0123"))
	assert.True(t, ValidCombination("9999"))
	assert.False(t, ValidCombination("123"))
	assert.False(t, ValidCombination("12345"))
	assert.False(t, ValidCombination("12a4"))
	assert.False(t, ValidCombination(" 123"))
	assert.False(t, ValidCombination(""))
}
