// Package textsanitize strips markup from user-supplied plain-text fields
// before they are stored.
package textsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and attribute. It is safe for concurrent use.
var strict = bluemonday.StrictPolicy()

// Text returns s with all HTML removed and surrounding whitespace trimmed.
// Entities escaped by the policy are decoded again so "Tom & Jerry" round-trips.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// TextPtr applies Text to *p, leaving nil alone.
func TextPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := Text(*p)
	return &v
}
