package model

import (
	"strings"
	"time"
)

// MinUsernameLength is the shortest username the server accepts
const MinUsernameLength = 3

// UserID uniquely identifies a joined user
type UserID string

// User is a chat participant holding a reserved username
type User struct {
	ID       UserID    `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// NormalizeUsername trims surrounding whitespace. Reservations compare the
// lowercased form, so "Alice" and "alice" are the same name.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// UsernameKey returns the case-folded form used to detect collisions
func UsernameKey(username string) string {
	return strings.ToLower(NormalizeUsername(username))
}
