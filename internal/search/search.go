// Package search owns the query lifecycle: validation, one request per
// submission, latest-issued-wins completion, typing debounce, and the
// placeholder rotator that runs while the search box is idle.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/gyanam/internal/answer"
	"github.com/csheth/gyanam/internal/clock"
	"github.com/csheth/gyanam/internal/markup"
	"github.com/csheth/gyanam/internal/suggest"
	"github.com/csheth/gyanam/internal/webhook"
)

const (
	// DefaultDebounce is the quiet window after the last keystroke.
	DefaultDebounce       = 400 * time.Millisecond
	defaultRequestTimeout = 60 * time.Second
	notifyPreviewLimit    = 40
)

var errNoClient = errors.New("no answer service configured")

var lastID int64

// Status is the request lifecycle stage.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the visible request state. It is replaced wholesale on every
// transition.
type State struct {
	Status      Status
	Query       string
	Text        string
	HTML        string
	Suggestions []string
	Message     string
}

// Querier sends one query to the answer service.
type Querier interface {
	Ask(ctx context.Context, query string) (*webhook.Response, error)
}

// Options configures a Submitter.
type Options struct {
	Client        Querier
	Debounce      bool
	DebounceDelay time.Duration
	Timeout       time.Duration
	Rotator       *suggest.Rotator
}

// NotifyKind classifies a toast.
type NotifyKind int

const (
	NotifySuccess NotifyKind = iota
	NotifyError
)

// NotifyMsg is a transient notification emitted after every applied
// completion. It travels separately from State.
type NotifyMsg struct {
	Kind NotifyKind
	Text string
}

type resultMsg struct {
	seq    uint64
	query  string
	answer answer.Answer
	html   string
	err    error
}

type debounceMsg struct {
	id    int
	tag   uint64
	query string
}

// Submitter is the single owner of the query, the request state and the
// placeholder cycle. All methods must be called from the Bubble Tea update
// loop.
type Submitter struct {
	id      int
	client  Querier
	rotator *suggest.Rotator
	jobs    *jobBus
	timeout time.Duration

	query         string
	state         State
	revision      uint64
	seq           uint64
	cancelRequest context.CancelFunc
	lastJob       JobSnapshot

	debounce       bool
	debounceDelay  time.Duration
	debounceTag    uint64
	cancelDebounce clock.Cancel
}

// New returns an idle Submitter.
func New(opts Options) *Submitter {
	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounce
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	rotator := opts.Rotator
	if rotator == nil {
		rotator = suggest.New(suggest.Default(), suggest.DefaultInterval)
	}
	return &Submitter{
		id:            int(atomic.AddInt64(&lastID, 1)),
		client:        opts.Client,
		rotator:       rotator,
		jobs:          newJobBus(),
		timeout:       timeout,
		debounce:      opts.Debounce,
		debounceDelay: delay,
	}
}

// Init arms the placeholder rotator.
func (s *Submitter) Init() tea.Cmd {
	return s.rotator.Start()
}

// State returns the current request state.
func (s *Submitter) State() State {
	return s.state
}

// Revision increases every time State is replaced.
func (s *Submitter) Revision() uint64 {
	return s.revision
}

// Query returns the current query value.
func (s *Submitter) Query() string {
	return s.query
}

// Pending reports whether the latest submission is still outstanding.
func (s *Submitter) Pending() bool {
	return s.state.Status == StatusPending
}

// Placeholder returns the rotating hint and whether the rotator is cycling.
func (s *Submitter) Placeholder() (string, bool) {
	return s.rotator.Placeholder(), s.rotator.Active()
}

// LastJob describes the most recent applied or running request.
func (s *Submitter) LastJob() JobSnapshot {
	return s.lastJob
}

// Submit validates query and issues exactly one request for it. Blank
// queries are ignored: no request, no state change. A newer submission
// supersedes any in-flight one.
func (s *Submitter) Submit(query string) tea.Cmd {
	trimmed, err := Validate(query)
	if err != nil {
		return nil
	}
	s.stopDebounce()
	if s.cancelRequest != nil {
		s.cancelRequest()
	}

	s.seq++
	seq := s.seq
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelRequest = cancel
	s.state = State{Status: StatusPending, Query: trimmed}
	s.revision++
	s.rotator.Pause()

	snapshot, cmd := s.jobs.Start(ctx, jobKindQuery, queryJob(seq, trimmed, s.client, s.timeout))
	s.lastJob = snapshot
	log.Printf("[search] submit seq=%d job=%s", seq, snapshot.ID)
	return cmd
}

// SelectSuggestion sets the query to text and submits it immediately.
func (s *Submitter) SelectSuggestion(text string) tea.Cmd {
	s.SetQuery(text)
	return s.Submit(text)
}

// SetQuery changes the query programmatically. It never debounces.
func (s *Submitter) SetQuery(value string) tea.Cmd {
	s.query = value
	if value != "" {
		s.rotator.Pause()
		return nil
	}
	return s.resumeRotator()
}

// Typed records a keystroke-driven change to the query. In debounce mode the
// quiet-window timer restarts on every call.
func (s *Submitter) Typed(value string) tea.Cmd {
	s.query = value
	if value == "" {
		s.stopDebounce()
		return s.resumeRotator()
	}
	s.rotator.Pause()
	if !s.debounce || strings.TrimSpace(value) == "" {
		s.stopDebounce()
		return nil
	}
	return s.scheduleDebounce(value)
}

// Focus pauses the rotator: the user is about to type.
func (s *Submitter) Focus() {
	s.rotator.Pause()
}

// Blur resumes the rotator when the field is empty and nothing is pending.
func (s *Submitter) Blur() tea.Cmd {
	return s.resumeRotator()
}

// Update applies completions, debounce ticks and rotator ticks.
func (s *Submitter) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case jobResultEnvelope:
		result, ok := msg.Payload.(resultMsg)
		if !ok {
			return nil
		}
		return s.complete(msg.Snapshot, result)
	case debounceMsg:
		if msg.id != s.id || msg.tag != s.debounceTag || s.cancelDebounce == nil {
			return nil
		}
		s.cancelDebounce = nil
		return s.Submit(msg.query)
	case suggest.TickMsg:
		return s.rotator.Update(msg)
	}
	return nil
}

// Close releases the in-flight request and every timer. Completions that
// arrive afterwards are discarded.
func (s *Submitter) Close() {
	s.stopDebounce()
	if s.cancelRequest != nil {
		s.cancelRequest()
		s.cancelRequest = nil
	}
	s.seq++
	s.rotator.Stop()
}

func (s *Submitter) complete(snapshot JobSnapshot, result resultMsg) tea.Cmd {
	if result.seq != s.seq {
		log.Printf("[search] discarding %s: seq=%d superseded by seq=%d", snapshot.ID, result.seq, s.seq)
		return nil
	}
	if s.cancelRequest != nil {
		s.cancelRequest()
		s.cancelRequest = nil
	}
	s.lastJob = snapshot
	s.revision++

	var note NotifyMsg
	if result.err != nil {
		log.Printf("[search] query %q failed: %v", result.query, result.err)
		s.state = State{
			Status:  StatusFailed,
			Query:   result.query,
			Message: UserMessage(result.err),
		}
		note = NotifyMsg{Kind: NotifyError, Text: "Search failed: " + s.state.Message}
	} else {
		suggestions := result.answer.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		s.state = State{
			Status:      StatusSucceeded,
			Query:       result.query,
			Text:        result.answer.Text,
			HTML:        result.html,
			Suggestions: suggestions,
		}
		note = NotifyMsg{Kind: NotifySuccess, Text: fmt.Sprintf("Answer ready for \"%s\"", preview(result.query, notifyPreviewLimit))}
	}

	notify := func() tea.Msg { return note }
	return tea.Batch(notify, s.resumeRotator())
}

func (s *Submitter) resumeRotator() tea.Cmd {
	if s.query != "" || s.Pending() {
		return nil
	}
	return s.rotator.Resume()
}

func (s *Submitter) scheduleDebounce(value string) tea.Cmd {
	s.stopDebounce()
	s.debounceTag++
	cmd, cancel := clock.After(s.debounceDelay, debounceMsg{id: s.id, tag: s.debounceTag, query: value})
	s.cancelDebounce = cancel
	return cmd
}

func (s *Submitter) stopDebounce() {
	if s.cancelDebounce == nil {
		return
	}
	s.cancelDebounce()
	s.cancelDebounce = nil
	s.debounceTag++
}

func queryJob(seq uint64, query string, client Querier, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		if client == nil {
			return resultMsg{seq: seq, query: query, err: errNoClient}, errNoClient
		}
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		resp, err := client.Ask(ctx, query)
		if err != nil {
			return resultMsg{seq: seq, query: query, err: err}, err
		}
		normalized, err := answer.Normalize(resp.ContentType, resp.Body)
		if err != nil {
			return resultMsg{seq: seq, query: query, err: err}, err
		}
		return resultMsg{
			seq:    seq,
			query:  query,
			answer: normalized,
			html:   markup.ToHTML(normalized.Text),
		}, nil
	}
}

func preview(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
