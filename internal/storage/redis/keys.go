package redis

import (
	"fmt"

	"github.com/mcoot/chatlogin/internal/model"
)

// Key prefix for all chat login data
const keyPrefix = "chatlogin"

// usernameKey returns the Redis key holding the user that reserved a name
func usernameKey(username string) string {
	return fmt.Sprintf("%s:username:%s", keyPrefix, model.UsernameKey(username))
}
