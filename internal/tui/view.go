package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/gyanam/internal/search"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	return joinNonEmpty([]string{
		m.heroView(),
		navStyle.Render(navLine),
		m.inputRow(),
		m.errorLine(),
		m.answerPanel(),
		m.suggestionsView(),
		m.toast.View(m.layout.viewportWidth),
		m.statusMeterView(),
		m.keyLegendView(),
		m.footerView(),
	})
}

func (m *model) heroView() string {
	if m.layout.compactHero {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			heroTitleStyle.Render(strings.ToUpper(brandName)),
			taglineStyle.Render(heroTagline),
		)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderLogo(),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) inputRow() string {
	box := inputBoxStyle
	if m.focus == focusInput {
		box = inputBoxActiveStyle
	}
	field := box.Render(m.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, field, "  ", m.buttonView())
}

func (m *model) buttonView() string {
	if m.search.Pending() {
		return buttonBusyStyle.Render(m.spinner.View() + " " + pendingLabel)
	}
	return buttonStyle.Render(buttonLabel)
}

func (m *model) errorLine() string {
	state := m.search.State()
	if state.Status != search.StatusFailed {
		return ""
	}
	return errorStyle.Render(state.Message)
}

func (m *model) answerPanel() string {
	state := m.search.State()
	if state.Status == search.StatusFailed {
		return ""
	}
	header := sectionHeaderStyle.Render("Answer")
	if state.Status == search.StatusSucceeded && state.Query != "" {
		header += helperStyle.Render("  for \"" + previewText(state.Query, 48) + "\"")
	}
	body := m.viewport.View()
	if m.viewport.TotalLineCount() > m.viewport.Height {
		body += "\n" + helperStyle.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	}
	return header + "\n" + body
}

func (m *model) suggestionsView() string {
	suggestions := m.search.State().Suggestions
	if len(suggestions) == 0 {
		return ""
	}
	width := m.wrapWidth(4)
	lines := []string{sectionHeaderStyle.Render(suggestHeader)}
	for idx, item := range suggestions {
		label := truncate.StringWithTail(item, uint(width), "…")
		if m.focus == focusSuggestions && idx == m.cursor {
			lines = append(lines, currentLineStyle.Render("▸ "+label))
			continue
		}
		lines = append(lines, suggestionStyle.Render("  "+label))
	}
	return strings.Join(lines, "\n")
}

func (m *model) statusMeterView() string {
	state := m.search.State()
	stats := []string{fmt.Sprintf("Status %s", state.Status)}
	if job := m.search.LastJob(); job.ID != "" {
		badge := fmt.Sprintf("%s %s", job.ID, job.Status)
		if job.Duration > 0 {
			badge += fmt.Sprintf(" in %s", job.Duration.Round(time.Millisecond))
		}
		stats = append(stats, badge)
	}
	if n := len(state.Suggestions); n > 0 {
		stats = append(stats, fmt.Sprintf("Suggestions %d", n))
	}
	if m.config.Debounce {
		stats = append(stats, "Live search")
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Search"},
		{"Tab", "Suggestions"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Clear"},
		{"Ctrl+C", "Quit"},
	}
	if m.focus == focusSuggestions {
		hints[0] = keyHint{"Enter", "Ask this"}
		hints[1] = keyHint{"↑/↓", "Choose"}
		hints[3] = keyHint{"Esc", "Back"}
	}
	cells := make([]string, 0, len(hints))
	for _, hint := range hints {
		key := keyStyle.Render(hint.Key)
		desc := keyDescStyle.Render(" " + hint.Description + "  ")
		cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) footerView() string {
	return footerStyle.Render(fmt.Sprintf("© %d %s. All rights reserved.", m.config.Now().Year(), brandName))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	// shadow first, so the face overwrites it
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
