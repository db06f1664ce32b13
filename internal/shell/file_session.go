package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcoot/chatlogin/internal/login"
)

// ErrNoSession is returned when no user has been persisted
var ErrNoSession = errors.New("not logged in")

// FileSession persists the signed-in user as JSON so later CLI invocations
// can see it. It also keeps the user in memory for the current process.
type FileSession struct {
	path    string
	current CurrentUser
}

var _ login.SessionSink = (*FileSession)(nil)

// NewFileSession creates a session stored at path
func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// Path returns the session file location
func (f *FileSession) Path() string {
	return f.path
}

// SetUser writes the user's raw JSON to the session file, creating its
// directory
func (f *FileSession) SetUser(ctx context.Context, user login.User) error {
	data := []byte(user)
	if !json.Valid(data) {
		return fmt.Errorf("failed to encode user: %w", login.ErrMalformedUser)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	// Write-then-rename so readers never see a partial file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write session: %w", err)
	}

	return f.current.SetUser(ctx, user)
}

// Load reads the persisted user
func (f *FileSession) Load() (login.User, error) {
	if user, ok := f.current.User(); ok {
		return user, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	user, err := login.ParseUser(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", f.path, err)
	}

	_ = f.current.SetUser(context.Background(), user)
	return user, nil
}

// Remove deletes the session file. Removing a missing session is not an error.
func (f *FileSession) Remove() error {
	f.current.Clear()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DefaultSessionFile returns ~/.chatlogin/user.json, or a relative path if
// the home directory is unknown
func DefaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".chatlogin", "user.json")
	}
	return filepath.Join(home, ".chatlogin", "user.json")
}
