package login

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// User is the authenticated user returned by the login endpoint. The chat
// server owns its shape; it is kept as the raw JSON value the server sent,
// so it reaches the session sink unchanged.
type User json.RawMessage

// ParseUser checks that a 200 response body is a JSON value and returns it
// as a User. Surrounding whitespace is dropped; the value itself is kept
// byte for byte.
func ParseUser(body []byte) (User, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedUser)
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedUser)
	}
	return User(bytes.Clone(trimmed)), nil
}

// MarshalJSON emits the raw value as is
func (u User) MarshalJSON() ([]byte, error) {
	return json.RawMessage(u).MarshalJSON()
}

// UnmarshalJSON stores a copy of data
func (u *User) UnmarshalJSON(data []byte) error {
	return (*json.RawMessage)(u).UnmarshalJSON(data)
}

// String returns the raw JSON text
func (u User) String() string {
	return string(u)
}

// Fields decodes the top level of the user when it is a JSON object. Values
// stay raw so numbers keep their exact text. Nil is returned for any other
// JSON value.
func (u User) Fields() map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(u, &fields); err != nil {
		return nil
	}
	return fields
}

// Field returns a top-level string field, or "" if the user is not an object
// or the field is absent or not a string
func (u User) Field(key string) string {
	raw, ok := u.Fields()[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Keys returns the top-level field names in sorted order
func (u User) Keys() []string {
	fields := u.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Display renders a top-level field for humans: strings unquoted, anything
// else as its JSON text
func (u User) Display(key string) string {
	raw, ok := u.Fields()[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
