// Package textutil provides text canonicalization for dedupe keys and
// address cleanup heuristics for geocoder compatibility.
package textutil

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for use in dedupe keys: lower-cases,
// trims, strips everything that is neither alphanumeric nor whitespace, and
// collapses whitespace runs to single spaces. It is total and idempotent.
// Never use it on display fields.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
