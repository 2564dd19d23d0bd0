package domain

import (
	"strings"
	"unicode"
)

// Slugify turns a custom form name into its form type key:
//   - trims and lowercases
//   - turns each run of whitespace into a single hyphen
//   - drops characters outside [a-z0-9-]
//   - collapses repeated hyphens and strips them from both ends
//
// Returns "" when nothing usable remains.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	prevHyphen := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if prevHyphen || b.Len() == 0 {
				continue
			}
			b.WriteByte('-')
			prevHyphen = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		}
	}
	return strings.TrimRight(b.String(), "-")
}
