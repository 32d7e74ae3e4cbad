package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/gyanam/internal/clock"
	"github.com/csheth/gyanam/internal/search"
)

type toastExpiredMsg struct {
	tag int
}

// toast shows the latest notification until its timer lapses or a newer one
// replaces it.
type toast struct {
	kind    search.NotifyKind
	text    string
	visible bool

	tag    int
	cancel clock.Cancel
}

func (t *toast) Show(note search.NotifyMsg) tea.Cmd {
	clock.Stop(t.cancel)
	t.tag++
	t.kind = note.Kind
	t.text = note.Text
	t.visible = true
	cmd, cancel := clock.After(toastDuration, toastExpiredMsg{tag: t.tag})
	t.cancel = cancel
	return cmd
}

func (t *toast) Expire(msg toastExpiredMsg) {
	if msg.tag != t.tag {
		return
	}
	t.visible = false
	t.cancel = nil
}

func (t *toast) Close() {
	clock.Stop(t.cancel)
	t.cancel = nil
	t.visible = false
}

func (t *toast) View(width int) string {
	if !t.visible || t.text == "" {
		return ""
	}
	text := previewText(t.text, width-4)
	if t.kind == search.NotifyError {
		return toastErrorStyle.Render("✗ " + text)
	}
	return toastSuccessStyle.Render("✓ " + text)
}
