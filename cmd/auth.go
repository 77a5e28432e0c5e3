package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email string
	var phone string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the store API and save the session",
		Example: `  shopctl login --email admin@example.com --phone 0501234567 --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || phone == "" || password == "" {
				return fmt.Errorf("email, phone and password are all required")
			}

			_, store, client, err := newSession()
			if err != nil {
				return err
			}

			out := client.Login(cmd.Context(), email, phone, password)
			if err := outcomeErr(out); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			slog.Info("Session saved", "dir", store.Dir())
			if u := store.User(); u != nil && u.Name != "" {
				fmt.Printf("Logged in as %s\n", u.Name)
			} else {
				fmt.Println("Logged in")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Account phone number (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := newSession()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := newSession()
			if err != nil {
				return err
			}
			if store.Token() == "" {
				return fmt.Errorf("not logged in")
			}
			u := store.User()
			if u == nil {
				fmt.Println("Logged in (no profile stored)")
				return nil
			}
			fmt.Printf("Name:  %s\nEmail: %s\nPhone: %s\n", u.Name, u.Email, u.Phone)
			return nil
		},
	}
}
