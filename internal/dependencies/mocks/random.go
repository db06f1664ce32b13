package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/chatlogin/internal/dependencies/random"
)

// MockRandom returns queued strings, then a numbered fallback so that
// generated IDs stay unique once the queue is drained
type MockRandom struct {
	mu       sync.Mutex
	queue    []string
	fallback int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom returning the given values first
func NewMockRandom(values ...string) *MockRandom {
	return &MockRandom{queue: values}
}

// String returns the next queued value, ignoring length and alphabet
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		return next
	}
	r.fallback++
	return fmt.Sprintf("%0*d", length, r.fallback)
}

// Queue adds values to be returned by String
func (r *MockRandom) Queue(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, values...)
}
