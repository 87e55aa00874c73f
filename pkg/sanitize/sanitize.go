// Package sanitize escapes user-supplied text for safe inclusion in
// generated HTML email bodies.
package sanitize

import "strings"

// htmlEscaper replaces the five HTML-significant characters with their
// entity equivalents. The ampersand rule runs first so already-produced
// entities are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes HTML-significant characters in text, leaving all other
// characters unchanged. An empty input yields an empty string.
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}
	return htmlEscaper.Replace(text)
}

// NewlinesToBreaks converts newline characters into <br> tags. It must only
// be applied to text that has already been escaped with EscapeHTML, so a raw
// newline-adjacent payload cannot reintroduce markup.
func NewlinesToBreaks(escaped string) string {
	escaped = strings.ReplaceAll(escaped, "\r\n", "<br>")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}
