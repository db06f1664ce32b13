package login

import (
	"errors"
	"fmt"
	"net/http"
)

// Status codes declared by the login endpoint
const (
	StatusOK              = http.StatusOK
	StatusInvalidUsername = http.StatusBadRequest
	StatusUsernameTaken   = http.StatusUnauthorized
)

// Banner messages shown for each failed outcome
const (
	MessageInvalidUsername   = "Username must be at least 3 characters long."
	MessageUsernameTaken     = "Username already taken."
	MessageServerUnavailable = "Server unavailable, please try again later."
	MessageUnhandled         = "Oops. Something went wrong, please try again later."
)

// Outcome is the result of one completed login attempt. The set of
// implementations is closed: Success, InvalidUsername, UsernameTaken and
// UnhandledError.
//
//sumtype:decl
type Outcome interface {
	isOutcome()
}

// Success carries the parsed user
type Success struct {
	User User
}

// InvalidUsername is the server's rejection of a too-short name
type InvalidUsername struct{}

// UsernameTaken is the server's rejection of a name already in use
type UsernameTaken struct{}

// UnhandledError covers transport failures and anything the server was not
// expected to say
type UnhandledError struct {
	Err error
}

func (Success) isOutcome()         {}
func (InvalidUsername) isOutcome() {}
func (UsernameTaken) isOutcome()   {}
func (UnhandledError) isOutcome()  {}

// Response is a login response with its body fully read
type Response struct {
	StatusCode int
	Body       []byte
}

// Classify maps the result of one login request to exactly one Outcome.
// err is the error returned by the dispatcher; transport failures are
// expected to wrap ErrServerUnavailable.
func Classify(resp *Response, err error) Outcome {
	switch {
	case err != nil:
		return UnhandledError{Err: err}
	case resp == nil:
		return UnhandledError{Err: ErrNoResponse}
	}

	switch resp.StatusCode {
	case StatusOK:
		user, err := ParseUser(resp.Body)
		if err != nil {
			return UnhandledError{Err: err}
		}
		return Success{User: user}
	case StatusInvalidUsername:
		return InvalidUsername{}
	case StatusUsernameTaken:
		return UsernameTaken{}
	default:
		return UnhandledError{Err: fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)}
	}
}

// Message returns the banner text for an outcome. Success has none.
func Message(o Outcome) string {
	switch o := o.(type) {
	case Success:
		return ""
	case InvalidUsername:
		return MessageInvalidUsername
	case UsernameTaken:
		return MessageUsernameTaken
	case UnhandledError:
		if errors.Is(o.Err, ErrServerUnavailable) {
			return MessageServerUnavailable
		}
		return MessageUnhandled
	}
	return MessageUnhandled
}

// Name returns a stable identifier for an outcome, used in logs and JSON output
func Name(o Outcome) string {
	switch o.(type) {
	case Success:
		return "success"
	case InvalidUsername:
		return "invalid_username"
	case UsernameTaken:
		return "username_taken"
	case UnhandledError:
		return "unhandled_error"
	}
	return "unknown"
}
