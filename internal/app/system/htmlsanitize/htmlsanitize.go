// Package htmlsanitize strips markup from user-supplied text before it
// is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag. Script and style contents are dropped.
var strict = bluemonday.StrictPolicy()

// Text returns s with all HTML removed and entities decoded, trimmed.
// The result is plain text meant to be rendered as text, never as HTML.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
