package shell

import (
	"context"
	"sync"

	"github.com/mcoot/chatlogin/internal/login"
)

// CurrentUser holds the signed-in user for the running application
type CurrentUser struct {
	mu   sync.RWMutex
	user login.User
}

var _ login.SessionSink = (*CurrentUser)(nil)

// SetUser stores user as the signed-in user
func (c *CurrentUser) SetUser(_ context.Context, user login.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
	return nil
}

// User returns the signed-in user, if any
func (c *CurrentUser) User() (login.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user, c.user != nil
}

// Clear signs the user out
func (c *CurrentUser) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
}
