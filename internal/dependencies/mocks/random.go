package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/torosvacas/internal/dependencies/random"
)

// MockRandom replays queued values. Once a queue is drained, Intn returns 0
// and Token returns a deterministic counter-based token.
type MockRandom struct {
	mu     sync.Mutex
	ints   []int
	tokens []string
	issued int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued int, clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// Token returns the next queued token or a generated one
func (r *MockRandom) Token(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tokens) > 0 {
		t := r.tokens[0]
		r.tokens = r.tokens[1:]
		return t
	}
	r.issued++
	return fmt.Sprintf("token-%d", r.issued)
}

// QueueIntn adds values to the Intn queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	r.ints = append(r.ints, values...)
	r.mu.Unlock()
}

// QueueDigits queues the Intn draws that make the secret generator produce
// the given digit string
func (r *MockRandom) QueueDigits(secret string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ch := range secret {
		d := int(ch - '0')
		if i == 0 {
			// first digit is drawn from [0, 9) and shifted by one
			d--
		}
		r.ints = append(r.ints, d)
	}
}

// QueueToken adds values to the Token queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	r.tokens = append(r.tokens, values...)
	r.mu.Unlock()
}

// Reset clears all queued values
func (r *MockRandom) Reset() {
	r.mu.Lock()
	r.ints = nil
	r.tokens = nil
	r.issued = 0
	r.mu.Unlock()
}
