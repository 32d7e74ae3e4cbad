// Package clock provides cancellable one-shot timers for Bubble Tea programs.
package clock

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Cancel stops a timer started by After. Calling it more than once is a no-op.
type Cancel func()

// After returns a command that delivers msg once d has elapsed, together with
// a canceller. A cancelled timer's command returns nil, which Bubble Tea
// ignores, so nothing reaches Update after the owner has let go of it.
func After(d time.Duration, msg tea.Msg) (tea.Cmd, Cancel) {
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() { close(done) })
	}
	cmd := func() tea.Msg {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-done:
			return nil
		case <-timer.C:
			return msg
		}
	}
	return cmd, cancel
}

// Stop invokes cancel when it is set. It lets owners keep a zero-value field.
func Stop(cancel Cancel) {
	if cancel != nil {
		cancel()
	}
}
