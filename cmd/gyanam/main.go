package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/csheth/gyanam/internal/markup"
	"github.com/csheth/gyanam/internal/tui"
	"github.com/csheth/gyanam/internal/webhook"
)

type options struct {
	endpoint    string
	envelope    string
	debounce    bool
	style       string
	logFile     string
	noAltScreen bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "gyanam",
		Short: "Ask credit card questions from the terminal",
		Long: `Gyanam sends your question to an answer webhook and renders the reply,
along with follow-up questions you can pick with Tab.

The endpoint comes from --endpoint, GYANAM_WEBHOOK_URL, or a .env file in the
working directory, in that order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.endpoint, "endpoint", "", "answer webhook URL (default $GYANAM_WEBHOOK_URL or "+webhook.DefaultEndpoint+")")
	flags.StringVar(&opts.envelope, "envelope", "", `request body shape: "query" or "legacy" (default $GYANAM_WEBHOOK_ENVELOPE or query)`)
	flags.BoolVar(&opts.debounce, "debounce", false, "search automatically after you stop typing")
	flags.StringVar(&opts.style, "style", markup.StyleAuto, `answer style: "auto", "dark", "light" or "notty"`)
	flags.StringVar(&opts.logFile, "log-file", "", "write diagnostics to this file")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	return cmd
}

func run(opts *options) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	closeLog, err := setupLogging(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := webhook.NewFromEnv(webhook.Config{
		Endpoint: opts.endpoint,
		Envelope: webhook.Envelope(opts.envelope),
	})
	if err != nil {
		return err
	}
	log.Printf("[gyanam] endpoint=%s envelope=%s debounce=%v", client.Endpoint(), client.Envelope(), opts.debounce)

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:   client,
			Debounce: opts.debounce,
			Style:    opts.style,
		}),
		programOpts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// setupLogging routes the standard logger to path, or discards it so log lines
// never land on the terminal the UI is drawing.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "gyanam")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
