package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mcoot/chatlogin/internal/shell"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := shell.NewFileSession(cfg.SessionFile).Load()
			if err != nil {
				return err
			}

			newOutput(cmd).Print(user)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged in user and release the username",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := shell.NewFileSession(cfg.SessionFile)

			user, err := session.Load()
			if errors.Is(err, shell.ErrNoSession) {
				newOutput(cmd).PrintMessage("Not logged in")
				return nil
			}
			if err != nil {
				logger.Warn("discarding unreadable session", slog.String("path", session.Path()), slog.Any("error", err))
			}

			if name := user.Field("username"); name != "" {
				req := map[string]string{"username": name}
				err := client.Post(cmd.Context(), "/logout", req, nil)
				switch {
				case HasStatus(err, http.StatusNotFound):
					logger.Debug("username already released", slog.String("username", name))
				case err != nil:
					logger.Warn("failed to release username", slog.String("username", name), slog.Any("error", err))
				}
			}

			if err := session.Remove(); err != nil {
				return fmt.Errorf("failed to remove session: %w", err)
			}

			newOutput(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}
