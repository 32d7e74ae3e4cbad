// Package tuitest runs the gyanam binary inside a pseudo terminal, types a
// scripted session into it and records every frame it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 100
	defaultHeight  = 32
	defaultTimeout = 10 * time.Second

	// appEnvPrefix marks the variables gyanam reads. Inherited ones are dropped
	// so a developer's shell cannot redirect or reshape a recorded session.
	appEnvPrefix   = "GYANAM_"
	endpointEnvVar = appEnvPrefix + "WEBHOOK_URL"
)

// Step is one scripted interaction: wait Delay, then write Input.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Config describes a recorded session.
type Config struct {
	// Command is the binary and its flags.
	Command []string
	Dir     string
	// Endpoint, when set, is exported as GYANAM_WEBHOOK_URL.
	Endpoint string
	// Env entries are added after the inherited environment is scrubbed.
	Env        []string
	Width      int
	Height     int
	Background Background
	Steps      []Step
	Timeout    time.Duration
	// AllowInterrupt accepts an exit caused by the Ctrl+C the script sent.
	AllowInterrupt bool
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
	// Replies counts the terminal queries the harness answered.
	Replies int
}

type session struct {
	cmd       *exec.Cmd
	ptmx      *os.File
	output    bytes.Buffer
	responder *terminalResponder
	drained   chan struct{}
}

// Run starts cfg.Command in a PTY, replays cfg.Steps and waits for it to exit.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cfg = withDefaults(cfg)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	s, err := start(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.ptmx.Close() }()

	began := time.Now()
	if err := s.play(ctx, cfg.Steps); err != nil {
		return nil, err
	}
	if err := s.wait(ctx, cfg.AllowInterrupt); err != nil {
		return nil, err
	}

	_ = s.ptmx.Close()
	<-s.drained

	raw := s.output.Bytes()
	return &Recording{
		Raw:      raw,
		Frames:   parseFrames(raw),
		Duration: time.Since(began),
		Replies:  s.responder.answered,
	}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

func start(ctx context.Context, cfg Config) (*session, error) {
	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = sessionEnv(os.Environ(), cfg)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start %s: %w", cfg.Command[0], err)
	}
	s := &session{
		cmd:       cmd,
		ptmx:      ptmx,
		responder: newTerminalResponder(ptmx, cfg.Background),
		drained:   make(chan struct{}),
	}
	go s.record()
	return s, nil
}

// record copies terminal output until the PTY closes. The output buffer is
// only read after drained is closed.
func (s *session) record() {
	defer close(s.drained)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.responder.Feed(buf[:n])
			s.output.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *session) play(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: step %d not reached: %w", i, ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := s.ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: step %d: write input: %w", i, err)
		}
	}
	return nil
}

func (s *session) wait(ctx context.Context, allowInterrupt bool) error {
	exited := make(chan error, 1)
	go func() { exited <- s.cmd.Wait() }()

	select {
	case err := <-exited:
		if err == nil || (allowInterrupt && interrupted(err)) {
			return nil
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

func interrupted(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 130 {
		return true
	}
	return strings.Contains(err.Error(), "signal: interrupt")
}

// sessionEnv drops inherited GYANAM_* and TERM entries, then layers the
// session's own settings on top.
func sessionEnv(inherited []string, cfg Config) []string {
	env := make([]string, 0, len(inherited)+len(cfg.Env)+2)
	for _, entry := range inherited {
		if strings.HasPrefix(entry, appEnvPrefix) || strings.HasPrefix(entry, "TERM=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TERM=xterm-256color")
	if cfg.Endpoint != "" {
		env = append(env, endpointEnvVar+"="+cfg.Endpoint)
	}
	return append(env, cfg.Env...)
}

var (
	// KeyEnter submits the search box or asks the highlighted suggestion.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC quits gyanam.
	KeyCtrlC = []byte{3}
	// KeyEsc clears the search box or leaves the suggestion list.
	KeyEsc = []byte{27}
	// KeyTab moves focus between the search box and the suggestion list.
	KeyTab = []byte{'\t'}
	// KeyDown moves the suggestion cursor.
	KeyDown = []byte("\x1b[B")
)

// Type returns a step that writes text as a single burst of keystrokes.
func Type(text string) Step {
	return Step{Input: []byte(text)}
}

// Wait returns a step that only pauses.
func Wait(d time.Duration) Step {
	return Step{Delay: d}
}

// Press returns a step that sends key after delay.
func Press(key []byte, delay time.Duration) Step {
	return Step{Delay: delay, Input: key}
}
