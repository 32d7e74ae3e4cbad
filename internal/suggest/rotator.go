// Package suggest cycles example questions through the search placeholder
// while the user is idle.
package suggest

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/gyanam/internal/clock"
)

// DefaultInterval is how long each candidate stays in the placeholder.
const DefaultInterval = 3 * time.Second

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Default returns the built-in placeholder candidates.
func Default() []string {
	return []string{
		"Find the best credit card for you...",
		"Best card for students",
		"Which card has no annual fee?",
		"Best card for travel rewards",
		"Cashback cards for groceries",
	}
}

// TickMsg advances a Rotator. Ticks carry the rotator id and the tag of the
// timer that produced them; anything else is stale and ignored.
type TickMsg struct {
	id  int
	tag int
}

// Rotator is a two-state machine: Paused, or Cycling(index).
type Rotator struct {
	candidates []string
	interval   time.Duration
	index      int
	active     bool

	id     int
	tag    int
	cancel clock.Cancel
}

// New returns a rotator in Cycling(0). Call Start to arm its timer.
func New(candidates []string, interval time.Duration) *Rotator {
	if len(candidates) == 0 {
		candidates = Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{
		candidates: append([]string(nil), candidates...),
		interval:   interval,
		active:     true,
		id:         nextID(),
	}
}

// Start arms the interval timer when cycling. It returns nil while paused.
func (r *Rotator) Start() tea.Cmd {
	if !r.active {
		return nil
	}
	return r.arm()
}

// Pause stops cycling and cancels the pending tick.
func (r *Rotator) Pause() {
	if !r.active {
		return
	}
	r.active = false
	r.disarm()
}

// Resume restarts cycling from index 0. It is a no-op when already cycling so
// an active timer is never restarted mid-interval.
func (r *Rotator) Resume() tea.Cmd {
	if r.active {
		return nil
	}
	r.active = true
	r.index = 0
	return r.arm()
}

// Stop releases the timer. Used at teardown.
func (r *Rotator) Stop() {
	r.active = false
	r.disarm()
}

// Update handles this rotator's ticks and re-arms for the next interval.
func (r *Rotator) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.id != r.id || tick.tag != r.tag || !r.active {
		return nil
	}
	r.index = (r.index + 1) % len(r.candidates)
	return r.arm()
}

// Placeholder is the candidate currently on display.
func (r *Rotator) Placeholder() string {
	return r.candidates[r.index]
}

// Index reports the current position in the cycle.
func (r *Rotator) Index() int {
	return r.index
}

// Active reports whether the rotator is cycling.
func (r *Rotator) Active() bool {
	return r.active
}

func (r *Rotator) arm() tea.Cmd {
	r.disarm()
	r.tag++
	cmd, cancel := clock.After(r.interval, TickMsg{id: r.id, tag: r.tag})
	r.cancel = cancel
	return cmd
}

func (r *Rotator) disarm() {
	clock.Stop(r.cancel)
	r.cancel = nil
}
