package shell

import (
	"sync"

	"github.com/mcoot/chatlogin/internal/login"
)

// ErrorBanner is the application-wide error display. The zero value shows
// nothing and is ready to use.
type ErrorBanner struct {
	mu      sync.RWMutex
	message string
	shown   bool
}

var _ login.ErrorSink = (*ErrorBanner)(nil)

// DisplayedError returns the current message and whether one is shown
func (b *ErrorBanner) DisplayedError() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.message, b.shown
}

// SetError shows message. An empty message clears the banner.
func (b *ErrorBanner) SetError(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = message
	b.shown = message != ""
}

// ClearError hides the banner
func (b *ErrorBanner) ClearError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = ""
	b.shown = false
}
