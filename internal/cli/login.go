package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/chatlogin/internal/login"
	"github.com/mcoot/chatlogin/internal/shell"
)

// OutcomeError is returned by the login commands when an attempt resolves
// to anything other than a success. Its text is the banner message.
type OutcomeError struct {
	Outcome login.Outcome
	Message string
}

func (e *OutcomeError) Error() string {
	return e.Message
}

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a username",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := shell.NewFileSession(cfg.SessionFile)
			banner := &shell.ErrorBanner{}

			screen, err := newScreen(banner, session)
			if err != nil {
				return err
			}
			screen.SetUsername(username)

			outcome, err := screen.Submit(cmd.Context())
			if errors.Is(err, login.ErrUsernameTooShort) {
				return fmt.Errorf("username must be at least %d characters", login.MinUsernameLength)
			}
			if err != nil {
				return err
			}

			success, ok := outcome.(login.Success)
			if !ok {
				msg, _ := banner.DisplayedError()
				return &OutcomeError{Outcome: outcome, Message: msg}
			}

			newOutput(cmd).Print(success.User)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newScreen(banner login.ErrorSink, session login.SessionSink) (*login.Screen, error) {
	dispatcher, err := login.NewClient(cfg.ClientConfig(), nil, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("login endpoint resolved", slog.String("endpoint", dispatcher.Endpoint()))
	return login.NewScreen(dispatcher, banner, session, logger), nil
}
