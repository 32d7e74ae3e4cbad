package markup

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// answerPolicy allows the structural and inline subset answers use. Anything
// else, including script content and event handlers, is removed.
func answerPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements(
			"p", "br", "hr", "div", "span",
			"ul", "ol", "li",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "em", "b", "i", "u", "code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		p.AllowAttrs("href").OnElements("a")
		p.AllowStandardURLs()
		p.RequireNoReferrerOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// Sanitize strips everything outside the answer policy. Fully qualified links
// always come out with target="_blank" and rel="noreferrer noopener".
func Sanitize(s string) string {
	return answerPolicy().Sanitize(s)
}
