package login

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// MinUsernameLength is the client-side gate applied before a submit. The
// server enforces the same rule and remains authoritative.
const MinUsernameLength = 3

// ErrorSink holds the single error message displayed to the user. It is
// owned by the surrounding application and shared with the screen.
type ErrorSink interface {
	// DisplayedError returns the current message and whether one is shown
	DisplayedError() (string, bool)
	SetError(message string)
	ClearError()
}

// SessionSink takes ownership of the user once login succeeds
type SessionSink interface {
	SetUser(ctx context.Context, user User) error
}

// LoginAttempt identifies one submit, from Begin until Resolve
type LoginAttempt struct {
	ID       uint64
	Username string
}

// Screen is the state machine behind the login screen: the username field,
// the loading flag and the single in-flight attempt. Errors and the
// authenticated user go to the injected sinks.
//
// A Screen is not safe for concurrent use. Callers drive it from a single
// event loop; only Dispatch may run elsewhere.
type Screen struct {
	dispatcher Dispatcher
	errors     ErrorSink
	session    SessionSink
	logger     *slog.Logger

	username string
	loading  bool
	attempts uint64
}

// NewScreen creates an idle screen
func NewScreen(dispatcher Dispatcher, errors ErrorSink, session SessionSink, logger *slog.Logger) *Screen {
	return &Screen{
		dispatcher: dispatcher,
		errors:     errors,
		session:    session,
		logger:     loggerOrDiscard(logger),
	}
}

// Username returns the tracked field value
func (s *Screen) Username() string {
	return s.username
}

// IsLoading reports whether an attempt is in flight
func (s *Screen) IsLoading() bool {
	return s.loading
}

// SetUsername replaces the field value, clearing any displayed error
func (s *Screen) SetUsername(value string) {
	if _, shown := s.errors.DisplayedError(); shown {
		s.errors.ClearError()
	}
	s.username = value
}

// Begin starts an attempt: it sets the loading flag and clears the error
// banner. It sends nothing.
func (s *Screen) Begin() (LoginAttempt, error) {
	if s.loading {
		return LoginAttempt{}, ErrAttemptInFlight
	}
	if utf8.RuneCountInString(s.username) < MinUsernameLength {
		return LoginAttempt{}, ErrUsernameTooShort
	}

	s.attempts++
	s.loading = true
	s.errors.ClearError()

	attempt := LoginAttempt{ID: s.attempts, Username: s.username}
	s.logger.Debug("login attempt started",
		slog.Uint64("attempt", attempt.ID),
		slog.String("username", attempt.Username),
	)
	return attempt, nil
}

// Dispatch sends the request for attempt. It reads no screen state and may
// run off the event loop.
func (s *Screen) Dispatch(ctx context.Context, attempt LoginAttempt) (*Response, error) {
	return s.dispatcher.Login(ctx, attempt.Username)
}

// Resolve classifies the dispatch result for attempt and applies it: one
// error banner write for every failure, or one session handoff on success.
// The loading flag is cleared in every case, after the handoff on success.
func (s *Screen) Resolve(ctx context.Context, attempt LoginAttempt, resp *Response, err error) (Outcome, error) {
	if !s.loading || attempt.ID != s.attempts {
		return nil, ErrStaleAttempt
	}

	outcome := Classify(resp, err)
	switch o := outcome.(type) {
	case Success:
		if serr := s.session.SetUser(ctx, o.User); serr != nil {
			outcome = UnhandledError{Err: fmt.Errorf("%w: %w", ErrSessionRejected, serr)}
			s.errors.SetError(Message(outcome))
		}
	case InvalidUsername, UsernameTaken, UnhandledError:
		s.errors.SetError(Message(outcome))
	}
	s.loading = false

	attrs := []any{
		slog.Uint64("attempt", attempt.ID),
		slog.String("outcome", Name(outcome)),
	}
	if u, ok := outcome.(UnhandledError); ok {
		s.logger.Warn("login attempt failed", append(attrs, slog.Any("error", u.Err))...)
	} else {
		s.logger.Info("login attempt resolved", attrs...)
	}

	return outcome, nil
}

// Submit runs one complete attempt: Begin, a single awaited Dispatch, then
// Resolve. Guard errors from Begin are returned without an outcome.
func (s *Screen) Submit(ctx context.Context) (Outcome, error) {
	attempt, err := s.Begin()
	if err != nil {
		return nil, err
	}

	resp, err := s.Dispatch(ctx, attempt)
	return s.Resolve(ctx, attempt, resp, err)
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
