package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/gyanam/internal/suggest"
	"github.com/csheth/gyanam/internal/webhook"
)

type fakeQuerier struct {
	calls     []string
	cancelled map[string]bool
	respond   func(query string) (*webhook.Response, error)
}

func (f *fakeQuerier) Ask(ctx context.Context, query string) (*webhook.Response, error) {
	f.calls = append(f.calls, query)
	if ctx.Err() != nil {
		if f.cancelled == nil {
			f.cancelled = make(map[string]bool)
		}
		f.cancelled[query] = true
		return nil, &webhook.NetworkError{Err: ctx.Err()}
	}
	if f.respond != nil {
		return f.respond(query)
	}
	return &webhook.Response{StatusCode: http.StatusOK, ContentType: "text/plain", Body: []byte("answer for " + query)}, nil
}

func newTestSubmitter(t *testing.T, client Querier) *Submitter {
	t.Helper()
	return New(Options{
		Client:  client,
		Rotator: suggest.New([]string{"one", "two"}, time.Millisecond),
	})
}

func newWebhookClient(t *testing.T, url string) *webhook.Client {
	t.Helper()
	client, err := webhook.New(webhook.Config{Endpoint: url})
	if err != nil {
		t.Fatalf("webhook.New: %v", err)
	}
	return client
}

// run executes cmd and feeds its message back into the submitter.
func run(t *testing.T, s *Submitter, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return s.Update(cmd())
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSubmitSendsExactlyOneRequest(t *testing.T) {
	var hits int32
	queries := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		var payload struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		queries <- payload.Query
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "Try Card X")
	}))
	defer srv.Close()

	s := newTestSubmitter(t, newWebhookClient(t, srv.URL))
	cmd := s.Submit("  best card for students  ")
	if s.State().Status != StatusPending {
		t.Fatalf("status after submit = %v, want pending", s.State().Status)
	}
	run(t, s, cmd)

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("requests = %d, want 1", n)
	}
	if got := <-queries; got != "best card for students" {
		t.Fatalf("query sent = %q", got)
	}
	state := s.State()
	if state.Status != StatusSucceeded || state.Text != "Try Card X" {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.HTML != "<p>Try Card X</p>" {
		t.Fatalf("html = %q", state.HTML)
	}
}

func TestSubmitIgnoresBlankQuery(t *testing.T) {
	fake := &fakeQuerier{}
	s := newTestSubmitter(t, fake)

	for _, query := range []string{"", "   ", "\t\n"} {
		if cmd := s.Submit(query); cmd != nil {
			t.Fatalf("Submit(%q) returned a command", query)
		}
	}
	if s.State().Status != StatusIdle {
		t.Fatalf("status = %v, want idle", s.State().Status)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("unexpected requests: %v", fake.calls)
	}
	if s.LastJob().ID != "" {
		t.Fatalf("blank query should not start a job, got %q", s.LastJob().ID)
	}
}

func TestLatestSubmissionWins(t *testing.T) {
	fake := &fakeQuerier{}
	s := newTestSubmitter(t, fake)

	first := s.Submit("first")
	second := s.Submit("second")

	run(t, s, second)
	if cmd := run(t, s, first); cmd != nil {
		t.Fatalf("stale completion should not produce a command")
	}

	state := s.State()
	if state.Query != "second" || state.Text != "answer for second" {
		t.Fatalf("state reflects the wrong submission: %+v", state)
	}
	if !fake.cancelled["first"] {
		t.Fatal("superseded request context should be cancelled")
	}
}

func TestEarlierCompletionDoesNotResolvePending(t *testing.T) {
	s := newTestSubmitter(t, &fakeQuerier{})

	first := s.Submit("first")
	_ = s.Submit("second")
	run(t, s, first)

	state := s.State()
	if state.Status != StatusPending || state.Query != "second" {
		t.Fatalf("state = %+v, want pending for second", state)
	}
}

func TestStructuredAnswerWithSuggestions(t *testing.T) {
	fake := &fakeQuerier{respond: func(string) (*webhook.Response, error) {
		return &webhook.Response{
			StatusCode:  http.StatusOK,
			ContentType: "application/json",
			Body:        []byte(`{"html":"<p>Try Card X</p>","suggestedQuestions":["Best card for travel"]}`),
		}, nil
	}}
	s := newTestSubmitter(t, fake)
	run(t, s, s.Submit("best card"))

	state := s.State()
	if state.Status != StatusSucceeded {
		t.Fatalf("status = %v", state.Status)
	}
	if state.HTML != "<p>Try Card X</p>" {
		t.Fatalf("html = %q", state.HTML)
	}
	if len(state.Suggestions) != 1 || state.Suggestions[0] != "Best card for travel" {
		t.Fatalf("suggestions = %v", state.Suggestions)
	}
}

func TestStatusErrorShowsCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestSubmitter(t, newWebhookClient(t, srv.URL))
	run(t, s, s.Submit("best card"))

	state := s.State()
	if state.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", state.Status)
	}
	if !strings.Contains(state.Message, "500") || !strings.Contains(state.Message, "internal error") {
		t.Fatalf("message = %q", state.Message)
	}
	if state.Suggestions != nil || state.HTML != "" {
		t.Fatalf("failed state should not carry answer fields: %+v", state)
	}
}

func TestNetworkErrorIsSummarized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := newTestSubmitter(t, newWebhookClient(t, url))
	run(t, s, s.Submit("best card"))

	state := s.State()
	if state.Status != StatusFailed || state.Message != msgNetwork {
		t.Fatalf("state = %+v", state)
	}
}

func TestMalformedStructuredBody(t *testing.T) {
	fake := &fakeQuerier{respond: func(string) (*webhook.Response, error) {
		return &webhook.Response{StatusCode: http.StatusOK, ContentType: "application/json", Body: []byte("{")}, nil
	}}
	s := newTestSubmitter(t, fake)
	run(t, s, s.Submit("best card"))

	if got := s.State().Message; got != msgMalformed {
		t.Fatalf("message = %q", got)
	}
}

func TestCompletionNotifiesAfterStateUpdate(t *testing.T) {
	s := newTestSubmitter(t, &fakeQuerier{})
	s.SetQuery("best card")
	follow := run(t, s, s.Submit("best card"))

	if s.State().Status != StatusSucceeded {
		t.Fatalf("state should be applied before the toast, got %v", s.State().Status)
	}
	var note *NotifyMsg
	for _, msg := range collect(follow) {
		if n, ok := msg.(NotifyMsg); ok {
			note = &n
		}
	}
	if note == nil {
		t.Fatal("expected a NotifyMsg")
	}
	if note.Kind != NotifySuccess || !strings.Contains(note.Text, "best card") {
		t.Fatalf("unexpected notification %+v", *note)
	}
}

func TestDebounceOnlyLastKeystrokeSubmits(t *testing.T) {
	fake := &fakeQuerier{}
	s := New(Options{Client: fake, Debounce: true, Rotator: suggest.New(nil, time.Hour)})

	for _, value := range []string{"B", "Be", "Best"} {
		if cmd := s.Typed(value); cmd == nil {
			t.Fatalf("Typed(%q) should schedule a debounce timer", value)
		}
	}
	if s.Pending() {
		t.Fatal("typing should not submit immediately")
	}

	stale := debounceMsg{id: s.id, tag: s.debounceTag - 2, query: "Be"}
	if cmd := s.Update(stale); cmd != nil {
		t.Fatal("superseded debounce tick should be ignored")
	}
	latest := debounceMsg{id: s.id, tag: s.debounceTag, query: "Best"}
	cmd := s.Update(latest)
	if cmd == nil {
		t.Fatal("latest debounce tick should submit")
	}
	if s.State().Query != "Best" || !s.Pending() {
		t.Fatalf("state = %+v", s.State())
	}
	run(t, s, cmd)
	if len(fake.calls) != 1 || fake.calls[0] != "Best" {
		t.Fatalf("calls = %v", fake.calls)
	}
}

func TestManualSubmitCancelsDebounce(t *testing.T) {
	s := New(Options{Client: &fakeQuerier{}, Debounce: true, Rotator: suggest.New(nil, time.Hour)})
	s.Typed("travel")
	tick := debounceMsg{id: s.id, tag: s.debounceTag, query: "travel"}

	if cmd := s.Submit("travel"); cmd == nil {
		t.Fatal("submit should issue a request")
	}
	seq := s.seq
	if cmd := s.Update(tick); cmd != nil {
		t.Fatal("debounce tick after manual submit should be ignored")
	}
	if s.seq != seq {
		t.Fatalf("sequence advanced from %d to %d", seq, s.seq)
	}
}

func TestDebounceTimerDelivers(t *testing.T) {
	s := New(Options{Client: &fakeQuerier{}, Debounce: true, DebounceDelay: time.Millisecond, Rotator: suggest.New(nil, time.Hour)})
	s.rotator.Pause()

	cmd := s.scheduleDebounce("cashback")
	msg, ok := cmd().(debounceMsg)
	if !ok {
		t.Fatalf("expected debounceMsg")
	}
	if msg.query != "cashback" {
		t.Fatalf("query = %q", msg.query)
	}
}

func TestTypingWithoutDebounceNeverSubmits(t *testing.T) {
	fake := &fakeQuerier{}
	s := newTestSubmitter(t, fake)
	if cmd := s.Typed("best"); cmd != nil {
		t.Fatal("typing should not schedule anything without debounce")
	}
	if s.Pending() || len(fake.calls) != 0 {
		t.Fatal("typing should not submit")
	}
}

func TestRotatorFollowsQueryAndRequest(t *testing.T) {
	s := newTestSubmitter(t, &fakeQuerier{})
	if _, cycling := s.Placeholder(); !cycling {
		t.Fatal("rotator should start cycling")
	}

	s.Typed("b")
	if _, cycling := s.Placeholder(); cycling {
		t.Fatal("typing should pause the rotator")
	}
	if cmd := s.Typed(""); cmd == nil {
		t.Fatal("clearing the field should resume the rotator")
	}
	if _, cycling := s.Placeholder(); !cycling || s.rotator.Index() != 0 {
		t.Fatal("rotator should resume at index 0")
	}

	cmd := s.Submit("best card")
	if _, cycling := s.Placeholder(); cycling {
		t.Fatal("submit should pause the rotator")
	}
	if resume := s.Blur(); resume != nil {
		t.Fatal("rotator must not resume while a request is pending")
	}
	run(t, s, cmd)
	if _, cycling := s.Placeholder(); !cycling {
		t.Fatal("rotator should resume after completion with an empty query")
	}
}

func TestFocusPausesAndBlurResumes(t *testing.T) {
	s := newTestSubmitter(t, &fakeQuerier{})
	s.Focus()
	if _, cycling := s.Placeholder(); cycling {
		t.Fatal("focus should pause the rotator")
	}
	if cmd := s.Blur(); cmd == nil {
		t.Fatal("blur on an empty idle field should resume")
	}
}

func TestSelectSuggestionSetsQueryAndSubmits(t *testing.T) {
	fake := &fakeQuerier{}
	s := newTestSubmitter(t, fake)
	run(t, s, s.SelectSuggestion("Best card for travel"))

	if s.Query() != "Best card for travel" {
		t.Fatalf("query = %q", s.Query())
	}
	if len(fake.calls) != 1 || fake.calls[0] != "Best card for travel" {
		t.Fatalf("calls = %v", fake.calls)
	}
}

func TestCloseDiscardsInFlight(t *testing.T) {
	fake := &fakeQuerier{}
	s := newTestSubmitter(t, fake)
	cmd := s.Submit("best card")
	s.Close()

	if follow := run(t, s, cmd); follow != nil {
		t.Fatal("completion after close should be discarded")
	}
	if !fake.cancelled["best card"] {
		t.Fatal("close should cancel the in-flight request")
	}
	if _, cycling := s.Placeholder(); cycling {
		t.Fatal("close should stop the rotator")
	}
}

func TestUserMessage(t *testing.T) {
	long := strings.Repeat("x", 300)
	msg := UserMessage(&webhook.StatusError{Code: 502, Body: long})
	if !strings.Contains(msg, "502") {
		t.Fatalf("message = %q", msg)
	}
	if !strings.HasSuffix(msg, "…") || len([]rune(msg)) > 260 {
		t.Fatalf("excerpt not truncated: %q", msg)
	}
	if got := UserMessage(context.DeadlineExceeded); got != msgNetwork {
		t.Fatalf("deadline message = %q", got)
	}
	if got := UserMessage(fmt.Errorf("%w: over 4 bytes", webhook.ErrBodyTooLarge)); got != msgTooLarge {
		t.Fatalf("oversized message = %q", got)
	}
	if got := UserMessage(io.EOF); got != msgUnknown {
		t.Fatalf("unknown message = %q", got)
	}
}
