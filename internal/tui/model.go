package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/gyanam/internal/markup"
	"github.com/csheth/gyanam/internal/search"
	"github.com/csheth/gyanam/internal/suggest"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client   search.Querier
	Debounce bool
	// Style names the glamour style used for answers ("auto", "dark", ...).
	Style string
	// RotateEvery overrides the placeholder rotation interval.
	RotateEvery time.Duration
	// Now is used for the footer year; defaults to time.Now.
	Now func() time.Time
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Now == nil {
		config.Now = time.Now
	}

	submitter := search.New(search.Options{
		Client:   config.Client,
		Debounce: config.Debounce,
		Rotator:  suggest.New(suggest.Default(), config.RotateEvery),
	})

	input := textinput.New()
	input.Placeholder, _ = submitter.Placeholder()
	input.Prompt = "❯ "
	input.CharLimit = inputCharLimit
	input.Width = 56
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 10)
	vp.MouseWheelEnabled = true

	renderer, err := markup.NewTermRenderer(config.Style)
	if err != nil {
		log.Printf("[tui] answer renderer unavailable: %v", err)
	}

	return &model{
		config:        config,
		search:        submitter,
		renderer:      renderer,
		input:         input,
		spinner:       spin,
		viewport:      vp,
		layout:        newPageLayout(),
		focus:         focusInput,
		viewportDirty: true,
	}
}

type model struct {
	config   Config
	search   *search.Submitter
	renderer *markup.TermRenderer

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	layout   pageLayout
	toast    toast

	focus    focusArea
	cursor   int
	spinning bool
	revision uint64

	viewportDirty bool
	resetScroll   bool
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.search.Init())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case spinner.TickMsg:
		if !m.search.Pending() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case search.NotifyMsg:
		return m, m.toast.Show(msg)
	case toastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case suggest.TickMsg:
		cmd := m.search.Update(msg)
		m.syncPlaceholder()
		return m, cmd
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmd := m.search.Update(msg)
	m.syncResult()
	return m, tea.Batch(inputCmd, cmd, m.startSpinner())
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		return m.handleEsc()
	case tea.KeyTab, tea.KeyShiftTab:
		return m, m.toggleFocus()
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}
	if m.focus == focusSuggestions {
		return m.handleSuggestionKey(key)
	}
	return m.handleInputKey(key)
}

func (m *model) handleInputKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEnter {
		cmd := m.search.Submit(m.input.Value())
		m.syncResult()
		return m, tea.Batch(cmd, m.startSpinner())
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(key)
	after := m.input.Value()
	if after == before {
		return m, inputCmd
	}
	typedCmd := m.search.Typed(after)
	m.syncPlaceholder()
	return m, tea.Batch(inputCmd, typedCmd)
}

func (m *model) handleSuggestionKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggestions := m.search.State().Suggestions
	switch key.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(suggestions)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if len(suggestions) == 0 {
			return m, nil
		}
		text := suggestions[m.cursor]
		m.input.SetValue(text)
		m.input.CursorEnd()
		cmd := m.search.SelectSuggestion(text)
		m.focus = focusInput
		focusCmd := m.input.Focus()
		m.syncResult()
		return m, tea.Batch(cmd, focusCmd, m.startSpinner())
	}
	return m, nil
}

func (m *model) handleEsc() (tea.Model, tea.Cmd) {
	if m.focus == focusSuggestions {
		m.focus = focusInput
		m.search.Focus()
		m.syncPlaceholder()
		return m, m.input.Focus()
	}
	if m.input.Value() != "" {
		m.input.SetValue("")
		cmd := m.search.Typed("")
		m.syncPlaceholder()
		return m, cmd
	}
	return m.quit()
}

func (m *model) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		if len(m.search.State().Suggestions) == 0 {
			return nil
		}
		m.focus = focusSuggestions
		m.input.Blur()
		cmd := m.search.Blur()
		m.syncPlaceholder()
		return cmd
	}
	m.focus = focusInput
	m.search.Focus()
	m.syncPlaceholder()
	return m.input.Focus()
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.search.Close()
	m.toast.Close()
	return m, tea.Quit
}

func (m *model) startSpinner() tea.Cmd {
	if !m.search.Pending() || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// syncResult pulls a replaced submitter state into the widgets.
func (m *model) syncResult() {
	m.syncPlaceholder()
	if m.search.Revision() == m.revision {
		return
	}
	m.revision = m.search.Revision()
	state := m.search.State()
	if m.cursor >= len(state.Suggestions) {
		m.cursor = 0
	}
	if m.focus == focusSuggestions && len(state.Suggestions) == 0 {
		m.focus = focusInput
		m.input.Focus()
	}
	rows := 0
	if n := len(state.Suggestions); n > 0 {
		rows = n + 2
	}
	m.layout.Reserve(rows)
	m.applyLayout()
	m.resetScroll = true
}

func (m *model) syncPlaceholder() {
	m.input.Placeholder, _ = m.search.Placeholder()
}

func (m *model) applyLayout() {
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.input.Width = m.layout.inputWidth
	m.markViewportDirty()
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewport.SetContent(m.answerContent())
	if m.resetScroll {
		m.viewport.GotoTop()
		m.resetScroll = false
	}
	m.viewportDirty = false
}

func (m *model) answerContent() string {
	state := m.search.State()
	switch state.Status {
	case search.StatusSucceeded:
		if m.renderer == nil {
			return state.Text
		}
		return m.renderer.Render(state.HTML, m.wrapWidth(2))
	case search.StatusPending:
		return helperStyle.Render("Looking up \"" + previewText(state.Query, 60) + "\"…")
	case search.StatusFailed:
		return ""
	default:
		return helperStyle.Render(idleHint)
	}
}
