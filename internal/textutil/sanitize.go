package textutil

import (
	"strings"
	"unicode"
)

// Sanitize makes user-controlled text safe to draw in a single terminal row.
// Line breaks and tabs become spaces, other control characters become '?',
// and invisible formatting runes (bidi overrides, zero-width characters, soft
// hyphens) are dropped so a folder name cannot disguise itself.
func Sanitize(text string) string {
	if !needsSanitizing(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case isFormatting(r):
		case unicode.IsControl(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasFormattingRunes reports whether text contains bidi or zero-width
// formatting runes.
func HasFormattingRunes(text string) bool {
	for _, r := range text {
		if isFormatting(r) {
			return true
		}
	}
	return false
}

func needsSanitizing(text string) bool {
	for _, r := range text {
		if unicode.IsControl(r) || isFormatting(r) {
			return true
		}
	}
	return false
}

func isFormatting(r rune) bool {
	return unicode.Is(unicode.Cf, r) || r == 0x2028 || r == 0x2029
}
