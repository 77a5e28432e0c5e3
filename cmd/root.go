package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"shopctl/internal/catalog"
	"shopctl/internal/config"
	"shopctl/internal/session"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopctl",
		Short: "Admin console for the store catalog API",
		Long: `Shopctl manages a store's product and offer catalog over its REST API.

It ships an interactive console (shopctl console) plus scriptable
subcommands for listing, creating, updating, deleting and exporting
catalog entities. Credentials obtained with "shopctl login" are stored
on disk and attached to authenticated operations automatically.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newConsoleCmd())
	cmd.AddCommand(newEntityCmd(catalog.KindProduct))
	cmd.AddCommand(newEntityCmd(catalog.KindOffer))
	cmd.AddCommand(newExportCmd())

	return cmd
}

// newSession wires the shared dependency chain every subcommand needs.
func newSession() (*config.Config, *session.Store, *catalog.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	store := session.NewStore(cfg.StateDir)
	client := catalog.NewClient(cfg, store)
	return cfg, store, client, nil
}

// outcomeErr converts a failed submission outcome into a command error.
// Field errors are flattened so scripted callers see every problem at
// once, the same collect-all behavior the console form shows inline.
func outcomeErr(out catalog.Outcome) error {
	if !out.Kind.Failed() {
		return nil
	}
	msg := out.Message
	for field, fe := range out.FieldErrors {
		msg += fmt.Sprintf("\n  %s: %s", field, fe)
	}
	return fmt.Errorf("%s: %s", out.Kind, msg)
}
