// Package text canonicalizes free-text names into comparable keys.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes accented characters and removes the combining
// marks, so "café" compares equal to "cafe".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes raw for matching: accents stripped, lowercased,
// anything outside [a-z0-9 ] replaced by a space, whitespace collapsed and
// trimmed. The steps run in that order so the result is reproducible.
// Idempotent; empty input yields "".
//
// Connective words (de/da/do) are kept intact: distinct surnames sharing a
// connective must not collapse onto the same key.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s, _, err := transform.String(stripAccents, raw)
	if err != nil {
		// Malformed UTF-8; fall back to the raw bytes rather than fail.
		s = raw
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the whitespace-separated tokens of the normalized form.
func Tokens(raw string) []string {
	n := Normalize(raw)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}
