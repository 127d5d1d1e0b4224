package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// loginField identifies which input of the login form has focus.
type loginField int

const (
	fieldUsername loginField = iota
	fieldPassword
)

// loginForm is the login view's input state. Fields are plain rune buffers;
// the password renders masked.
type loginForm struct {
	username []rune
	password []rune
	focus    loginField
	errText  string
	busy     bool
}

func (f *loginForm) reset() {
	f.username = nil
	f.password = nil
	f.focus = fieldUsername
	f.errText = ""
	f.busy = false
}

func (f *loginForm) focused() *[]rune {
	if f.focus == fieldPassword {
		return &f.password
	}
	return &f.username
}

// handleKey edits the form. It returns true when the key was consumed, and
// submit when the operator pressed enter with both fields filled.
func (f *loginForm) handleKey(msg tea.KeyMsg) (consumed, submit bool) {
	if f.busy {
		return true, false
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown, tea.KeyUp:
		if f.focus == fieldUsername {
			f.focus = fieldPassword
		} else {
			f.focus = fieldUsername
		}
		return true, false
	case tea.KeyEnter:
		if f.focus == fieldUsername {
			f.focus = fieldPassword
			return true, false
		}
		return true, len(f.username) > 0 && len(f.password) > 0
	case tea.KeyBackspace:
		buffer := f.focused()
		if len(*buffer) > 0 {
			*buffer = (*buffer)[:len(*buffer)-1]
		}
		return true, false
	case tea.KeyRunes, tea.KeySpace:
		buffer := f.focused()
		*buffer = append(*buffer, msg.Runes...)
		return true, false
	}
	return false, false
}

// view renders the form. expiredNotice adds the "session expired" line when
// the operator was sent here by an invalidated session.
func (f *loginForm) view(theme Theme, expiredNotice bool) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Sign in") + "\n\n")
	if expiredNotice {
		b.WriteString(theme.Notice.Render("Session expired, please sign in again.") + "\n\n")
	}

	b.WriteString(renderField(theme, "Username", string(f.username), f.focus == fieldUsername))
	b.WriteString(renderField(theme, "Password", strings.Repeat("*", len(f.password)), f.focus == fieldPassword))

	switch {
	case f.busy:
		b.WriteString("\n" + theme.Muted.Render("Signing in…") + "\n")
	case f.errText != "":
		b.WriteString("\n" + theme.Error.Render(f.errText) + "\n")
	}

	b.WriteString("\n" + theme.Muted.Render("tab: switch field · enter: sign in · ctrl+c: quit"))
	return b.String()
}

func renderField(theme Theme, label, value string, focused bool) string {
	cursor := " "
	if focused {
		cursor = "█"
	}
	return theme.Cell.Render(label+": "+value+cursor) + "\n"
}
