package tui

import (
	"strings"
	"unicode/utf8"
)

const (
	fullHeroHeight    = 8 // logo with shadow plus tagline
	compactHeroHeight = 2
	fixedChrome       = 16
	minViewportHeight = 3
	minInputWidth     = 20
	buttonColumns     = 20
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	inputWidth     int
	reserved       int
	compactHero    bool
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 10,
		inputWidth:     56,
	}
}

// Update recomputes the panel geometry for a new window size.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	l.recompute()
}

// Reserve sets aside rows below the answer panel for the suggestion list.
func (l *pageLayout) Reserve(rows int) {
	if rows < 0 {
		rows = 0
	}
	l.reserved = rows
	l.recompute()
}

func (l *pageLayout) recompute() {
	if l.windowWidth == 0 && l.windowHeight == 0 {
		return
	}
	innerWidth := l.windowWidth - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth

	l.inputWidth = innerWidth - buttonColumns
	if l.inputWidth < minInputWidth {
		l.inputWidth = minInputWidth
	}

	l.compactHero = l.windowWidth < logoWidth()+viewportHorizontalPadding
	hero := fullHeroHeight
	if l.compactHero {
		hero = compactHeroHeight
	}
	usable := l.windowHeight - hero - fixedChrome - l.reserved
	if usable < minViewportHeight {
		usable = minViewportHeight
	}
	l.viewportHeight = usable
}

func logoWidth() int {
	width := 0
	for _, line := range logoArtLines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	// shadow column plus container padding
	return width + 3
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
