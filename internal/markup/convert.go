// Package markup converts answers into safe HTML and renders that HTML for
// the terminal.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	linkPattern    = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`)
	blankLines     = regexp.MustCompile(`\n[ \t]*\n+`)
	trailingPunct  = ".,;:!?)"
	newlineVariant = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// ToHTML converts an answer into sanitized HTML. Existing markup passes
// through; plain text is autolinked and split into paragraphs first.
func ToHTML(text string) string {
	if HasMarkup(text) {
		return Sanitize(text)
	}
	return Sanitize(TextToHTML(text))
}

// TextToHTML escapes plain text, autolinks URLs, wraps blank-line separated
// blocks in <p> and turns single newlines into <br>. The result is not
// sanitized.
func TextToHTML(text string) string {
	text = strings.TrimSpace(newlineVariant.Replace(text))
	if text == "" {
		return ""
	}
	blocks := blankLines.Split(text, -1)
	var b strings.Builder
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = Autolink(line)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// Autolink escapes a line of plain text and wraps bare http(s):// and www.
// tokens in anchors. The visible link text is the token as written.
func Autolink(line string) string {
	var b strings.Builder
	pos := 0
	for _, loc := range linkPattern.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		for end > start && strings.ContainsRune(trailingPunct, rune(line[end-1])) {
			end--
		}
		token := line[start:end]
		if strings.EqualFold(token, "www.") || strings.HasSuffix(strings.ToLower(token), "://") {
			continue
		}
		b.WriteString(html.EscapeString(line[pos:start]))
		href := token
		if strings.HasPrefix(strings.ToLower(token), "www.") {
			href = "https://" + token
		}
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(href))
		b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(html.EscapeString(token))
		b.WriteString("</a>")
		pos = end
	}
	b.WriteString(html.EscapeString(line[pos:]))
	return b.String()
}
