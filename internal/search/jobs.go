package search

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const jobKindQuery jobKind = "query"

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

// JobSnapshot describes one outbound request for the status line and logs.
type JobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobResultEnvelope struct {
	Snapshot JobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter uint64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

func (b *jobBus) nextID(kind jobKind) string {
	b.counter++
	return fmt.Sprintf("%s-%d", kind, b.counter)
}

// Start runs runner off the update loop and reports back with an envelope.
// It returns the running snapshot so the caller can show it immediately.
func (b *jobBus) Start(ctx context.Context, kind jobKind, runner jobRunner) (JobSnapshot, tea.Cmd) {
	id := b.nextID(kind)
	started := time.Now()
	running := JobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}

	cmd := func() tea.Msg {
		payload, err := runner(ctx)
		snapshot := JobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", id, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}
	return running, cmd
}
