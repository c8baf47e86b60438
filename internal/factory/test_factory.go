package factory

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/torosvacas/internal/dependencies/mocks"
	"github.com/mcoot/torosvacas/internal/services/auth"
	"github.com/mcoot/torosvacas/internal/services/game"
	"github.com/mcoot/torosvacas/internal/storage"
	"github.com/mcoot/torosvacas/internal/storage/memory"
	"github.com/mcoot/torosvacas/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App on in-memory storage with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a mocked App on the given storage backend
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		prometheus.NewRegistry(),
		game.DefaultConfig(),
		auth.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueSecret makes the next created game use the given secret
func (t *TestApp) QueueSecret(secret string) {
	t.MockRandom.QueueDigits(secret)
}
