package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/chatlogin/internal/shell"
	"github.com/mcoot/chatlogin/internal/tui"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Open the interactive login screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal, so nothing may log to it
			logger = slog.New(slog.DiscardHandler)

			session := shell.NewFileSession(cfg.SessionFile)
			banner := &shell.ErrorBanner{}

			screen, err := newScreen(banner, session)
			if err != nil {
				return err
			}

			user, err := tui.Run(cmd.Context(), screen, banner)
			if errors.Is(err, tui.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}

			newOutput(cmd).Print(user)
			return nil
		},
	}
}
