package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"shopctl/internal/catalog"
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusDelete
)

// confirmState is an open delete-confirmation modal. While it is non-nil,
// all other input is captured; the destructive call is only issued from
// the modal's delete button.
type confirmState struct {
	schema catalog.Schema
	id     string
	name   string
	focus  confirmFocus
}

func renderConfirm(c *confirmState) string {
	// No nested borders inside the modal: some terminals show background
	// artifacts when bordered components stack.
	deleteBtn := styleBtn.Render("delete")
	cancelBtn := styleBtn.Render("cancel")
	if c.focus == confirmFocusDelete {
		deleteBtn = styleBtnActive.Render("delete")
	} else {
		cancelBtn = styleBtnActive.Render("cancel")
	}

	body := fmt.Sprintf("Delete %s %q?\nThis cannot be undone.", c.schema.Kind, c.name)
	controls := lipgloss.JoinHorizontal(lipgloss.Top, cancelBtn, " ", deleteBtn)
	help := styleMuted.Render("tab: focus   enter: select   esc: cancel")

	return styleModal.Render(body + "\n\n" + controls + "\n\n" + help)
}
