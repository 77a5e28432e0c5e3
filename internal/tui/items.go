package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"shopctl/internal/catalog"
)

// entityItem adapts a catalog entity to the bubbles list delegate.
type entityItem struct {
	entity catalog.Entity
	kind   catalog.Kind
}

func (i entityItem) FilterValue() string { return i.entity.Name }

func (i entityItem) Title() string {
	e := i.entity
	if i.kind == catalog.KindOffer {
		title := fmt.Sprintf("%s  %.0f → %.0f", e.Name, e.OldPrice, e.NewPrice)
		if d, ok := catalog.Discount(e.OldPrice, e.NewPrice); ok {
			title += fmt.Sprintf("  (-%d%%)", d)
		}
		return title
	}
	return fmt.Sprintf("%s  %.0f", e.Name, e.Price)
}

func (i entityItem) Description() string {
	e := i.entity
	parts := []string{}
	if e.Category != "" {
		parts = append(parts, e.Category)
	}
	if len(e.Sizes) > 0 {
		parts = append(parts, "sizes: "+strings.Join(e.Sizes, ","))
	}
	if len(e.Colors) > 0 {
		parts = append(parts, "colors: "+strings.Join(e.Colors, ","))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "  ")
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// The app renders its own header/footer, keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("entry", "entries")
	// ESC means "back" here, not quit.
	l.KeyMap.Quit.SetKeys("q")
	return l
}

func entityItems(kind catalog.Kind, entities []catalog.Entity) []list.Item {
	items := make([]list.Item, 0, len(entities))
	for _, e := range entities {
		items = append(items, entityItem{entity: e, kind: kind})
	}
	return items
}
