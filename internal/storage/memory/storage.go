package memory

import (
	"context"
	"sync"

	"github.com/mcoot/chatlogin/internal/model"
	"github.com/mcoot/chatlogin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Reservations never expire.
type Storage struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[string]*model.User),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ReserveUsername(ctx context.Context, user *model.User) error {
	key := model.UsernameKey(user.Username)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return model.ErrUsernameTaken
	}
	stored := *user
	s.users[key] = &stored
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[model.UsernameKey(username)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (s *Storage) ReleaseUsername(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := model.UsernameKey(username)
	if _, ok := s.users[key]; !ok {
		return model.ErrUserNotFound
	}
	delete(s.users, key)
	return nil
}
