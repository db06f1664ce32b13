package factory

import (
	"context"
	"time"

	"github.com/mcoot/chatlogin/internal/dependencies/mocks"
	"github.com/mcoot/chatlogin/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	return &TestApp{
		App:        newWithDependencies(store, mockClock, mockRandom),
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// Reserve joins each username, panicking on failure. For test setup only.
func (t *TestApp) Reserve(names ...string) {
	for _, name := range names {
		if _, err := t.Usernames.Join(context.Background(), name); err != nil {
			panic("reserve " + name + ": " + err.Error())
		}
	}
}
