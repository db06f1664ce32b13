package response

import (
	"time"

	"github.com/mcoot/chatlogin/internal/model"
)

// User is the body of a successful login
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		JoinedAt: u.JoinedAt,
	}
}

// Health is the body of GET /health
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
