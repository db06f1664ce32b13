package storage

import (
	"context"

	"github.com/mcoot/chatlogin/internal/model"
)

// Storage defines the interface for username reservations. Usernames are
// matched by model.UsernameKey.
type Storage interface {
	// ReserveUsername stores user under its username, or returns
	// model.ErrUsernameTaken if the name is already held. The check and the
	// write are atomic.
	ReserveUsername(ctx context.Context, user *model.User) error

	// GetUserByUsername returns the holder of a username, or
	// model.ErrUserNotFound
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// ReleaseUsername frees a username, or returns model.ErrUserNotFound if
	// it is not held. The check and the delete are atomic.
	ReleaseUsername(ctx context.Context, username string) error
}
