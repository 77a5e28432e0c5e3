package cmd

import (
	"github.com/spf13/cobra"

	"shopctl/internal/tui"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive catalog console",
		Long: `Open the full-screen console: browse products and offers, create and
edit entries with live validation, and manage the session. Starts on the
login screen when no session is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, client, err := newSession()
			if err != nil {
				return err
			}
			return tui.Run(cfg, store, client)
		},
	}
}
