// Package htmlsanitize reduces user-entered free text to safe plain text.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag. Text content is kept and HTML-escaped.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s and trims surrounding whitespace.
// Script and style bodies are dropped entirely. The result is unescaped
// text ("Tom & Jerry", not "Tom &amp; Jerry"), ready for JSON encoding
// and unsafe to write into HTML as is.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
