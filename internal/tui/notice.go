package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/catalog"
)

// notice is one surfaced notification. Hard failures (timeout, server
// rejection) persist until dismissed with "x"; everything else
// auto-dismisses.
type notice struct {
	id         int
	text       string
	isErr      bool
	persistent bool
}

type noticeExpiredMsg struct{ id int }

const noticeTTL = 3 * time.Second

// pushNotice appends a notification and returns the expiry command for
// auto-dismissing ones.
func (m *appModel) pushNotice(text string, isErr, persistent bool) tea.Cmd {
	m.noticeSeq++
	n := notice{id: m.noticeSeq, text: text, isErr: isErr, persistent: persistent}
	m.notices = append(m.notices, n)
	if persistent {
		return nil
	}
	id := n.id
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
}

// noticeForOutcome routes a submission outcome to the notification
// boundary with the uniform persistence rule.
func (m *appModel) noticeForOutcome(out catalog.Outcome) tea.Cmd {
	if out.Kind.Failed() {
		return m.pushNotice(out.Message, true, out.Kind.Persistent())
	}
	return m.pushNotice(out.Message, false, false)
}

func (m *appModel) dropNotice(id int) {
	for i, n := range m.notices {
		if n.id == id {
			m.notices = append(m.notices[:i], m.notices[i+1:]...)
			return
		}
	}
}

// dismissNotices clears the persistent ones. Bound to ctrl+x on every
// screen, plus plain "x" where no text input owns the key.
func (m *appModel) dismissNotices() {
	kept := m.notices[:0]
	for _, n := range m.notices {
		if !n.persistent {
			kept = append(kept, n)
		}
	}
	m.notices = kept
}

func (m *appModel) renderNotices() string {
	if len(m.notices) == 0 {
		return ""
	}
	out := ""
	for _, n := range m.notices {
		line := n.text
		if n.persistent {
			line += "  (ctrl+x: dismiss)"
		}
		if n.isErr {
			out += styleError.Render("✗ "+line) + "\n"
		} else {
			out += styleOK.Render("✓ "+line) + "\n"
		}
	}
	return out
}
