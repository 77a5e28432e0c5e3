// Package tui is the interactive console: session-guarded navigation,
// product and offer lists, and create/edit forms with live validation.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/catalog"
	"shopctl/internal/config"
	"shopctl/internal/session"
)

// Run starts the console and blocks until the user quits.
func Run(cfg *config.Config, store *session.Store, client *catalog.Client) error {
	m := newAppModel(cfg, store, client)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}
