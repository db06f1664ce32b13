package login

import "errors"

// Errors returned by the screen guards. They reject a submit before any
// attempt starts and leave the screen state untouched.
var (
	ErrUsernameTooShort = errors.New("username too short")
	ErrAttemptInFlight  = errors.New("login attempt already in flight")
	ErrStaleAttempt     = errors.New("login attempt is not in flight")
)

// Errors carried by UnhandledError outcomes
var (
	// ErrServerUnavailable wraps any failure that happened before a response
	// was obtained (unreachable host, refused connection, timeout)
	ErrServerUnavailable = errors.New("server unavailable")
	ErrNoResponse        = errors.New("no response")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedUser     = errors.New("malformed user payload")
	ErrResponseTooLarge  = errors.New("response too large")
	ErrSessionRejected   = errors.New("session rejected user")
)

// ErrInvalidEndpoint is returned when the login endpoint cannot be built
// from the configured origin and API URL
var ErrInvalidEndpoint = errors.New("invalid login endpoint")
