package markup

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/reflow/wordwrap"
)

const defaultRenderCacheSize = 64

// StyleAuto picks a glamour style from the terminal background.
const StyleAuto = "auto"

// TermRenderer draws sanitized HTML as styled terminal text.
type TermRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    *lru.Cache[string, string]
}

// NewTermRenderer returns a renderer using the named glamour style
// ("auto", "dark", "light", "notty", ...).
func NewTermRenderer(style string) (*TermRenderer, error) {
	if strings.TrimSpace(style) == "" {
		style = StyleAuto
	}
	cache, err := lru.New[string, string](defaultRenderCacheSize)
	if err != nil {
		return nil, err
	}
	return &TermRenderer{style: style, cache: cache}, nil
}

// Render converts html to Markdown and renders it at the given wrap width.
// Conversion or styling failures fall back to wrapped plain Markdown.
func (r *TermRenderer) Render(html string, width int) string {
	if width < 20 {
		width = 20
	}
	key := fmt.Sprintf("%d\x00%s", width, html)
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		markdown = html
	}
	out, err := r.styled(markdown, width)
	if err != nil {
		out = wordwrap.String(markdown, width)
	}
	out = strings.Trim(out, "\n")
	r.cache.Add(key, out)
	return out
}

func (r *TermRenderer) styled(markdown string, width int) (string, error) {
	if r.renderer == nil || r.width != width {
		styleOpt := glamour.WithStandardStyle(r.style)
		if r.style == StyleAuto {
			styleOpt = glamour.WithAutoStyle()
		}
		renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return "", err
		}
		r.renderer = renderer
		r.width = width
	}
	return r.renderer.Render(markdown)
}
