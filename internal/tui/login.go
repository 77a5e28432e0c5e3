package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the credentials form. It performs required-field checks
// only; the network call is a single fire-and-forget request.
type loginModel struct {
	email    textinput.Model
	phone    textinput.Model
	password textinput.Model
	focus    int
	errMsg   string
	busy     bool
}

func newLoginModel() loginModel {
	m := loginModel{
		email:    newFormInput("email", ""),
		phone:    newFormInput("phone", ""),
		password: newFormInput("password", ""),
	}
	m.password.EchoMode = textinput.EchoPassword
	m.email.Focus()
	return m
}

func (lm *loginModel) fields() []*textinput.Model {
	return []*textinput.Model{&lm.email, &lm.phone, &lm.password}
}

func (lm *loginModel) setFocus(i int) {
	fields := lm.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	lm.focus = i
	for j, f := range fields {
		if j == i {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// loginRequestMsg asks the app to dispatch the login call.
type loginRequestMsg struct {
	email    string
	phone    string
	password string
}

func (lm *loginModel) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			lm.setFocus(lm.focus + 1)
			return nil
		case "shift+tab", "up":
			lm.setFocus(lm.focus - 1)
			return nil
		case "enter":
			if lm.focus < len(lm.fields())-1 {
				lm.setFocus(lm.focus + 1)
				return nil
			}
			return lm.submit()
		}
	}

	var cmd tea.Cmd
	fields := lm.fields()
	*fields[lm.focus], cmd = fields[lm.focus].Update(msg)
	return cmd
}

func (lm *loginModel) submit() tea.Cmd {
	if lm.busy {
		return nil
	}
	email := strings.TrimSpace(lm.email.Value())
	phone := strings.TrimSpace(lm.phone.Value())
	password := lm.password.Value()
	if email == "" || phone == "" || password == "" {
		lm.errMsg = "all fields are required"
		return nil
	}
	lm.errMsg = ""
	lm.busy = true
	return func() tea.Msg {
		return loginRequestMsg{email: email, phone: phone, password: password}
	}
}

func (lm *loginModel) view() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Sign in") + "\n\n")

	labels := []string{"email", "phone", "password"}
	for i, f := range lm.fields() {
		b.WriteString(styleLabel.Render(labels[i]) + "\n")
		b.WriteString(f.View() + "\n")
	}
	if lm.errMsg != "" {
		b.WriteString("\n" + styleError.Render(lm.errMsg) + "\n")
	}
	if lm.busy {
		b.WriteString("\n" + styleMuted.Render("signing in…") + "\n")
	}
	b.WriteString("\n" + styleFooter.Render("enter: next/submit  tab: move  ctrl+c: quit"))
	return b.String()
}
