package usernames

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mcoot/chatlogin/internal/dependencies/clock"
	"github.com/mcoot/chatlogin/internal/dependencies/random"
	"github.com/mcoot/chatlogin/internal/model"
	"github.com/mcoot/chatlogin/internal/storage"
)

// idLength is the length of the random part of a user ID
const idLength = 16

// Service hands out usernames to joining users
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// New creates a new username service
func New(storage storage.Storage, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Join reserves username for a new user. The name is trimmed first and must
// then be at least model.MinUsernameLength characters.
func (s *Service) Join(ctx context.Context, username string) (*model.User, error) {
	username = model.NormalizeUsername(username)
	if utf8.RuneCountInString(username) < model.MinUsernameLength {
		return nil, model.ErrUsernameTooShort
	}

	user := &model.User{
		ID:       model.UserID("u_" + s.random.String(idLength, random.IDAlphabet)),
		Username: username,
		JoinedAt: s.clock.Now(),
	}

	if err := s.storage.ReserveUsername(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("reserve username: %w", err)
	}
	return user, nil
}

// Leave releases username so it can be joined again
func (s *Service) Leave(ctx context.Context, username string) error {
	username = model.NormalizeUsername(username)
	if username == "" {
		return model.ErrUserNotFound
	}

	return s.storage.ReleaseUsername(ctx, username)
}

// Lookup returns the user holding username
func (s *Service) Lookup(ctx context.Context, username string) (*model.User, error) {
	return s.storage.GetUserByUsername(ctx, model.NormalizeUsername(username))
}
