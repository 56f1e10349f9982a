package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// Width reports the number of terminal columns text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate cuts text to at most maxWidth columns, ending it with an ellipsis
// when anything was removed.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if Width(text) <= maxWidth {
		return text
	}
	ellipsisWidth := Width(Ellipsis)
	if maxWidth <= ellipsisWidth {
		return Ellipsis
	}

	available := maxWidth - ellipsisWidth
	var b strings.Builder
	used := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if used+w > available {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// TruncateLeft keeps the end of text, which for paths is the useful part.
func TruncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if Width(text) <= maxWidth {
		return text
	}
	ellipsisWidth := Width(Ellipsis)
	if maxWidth <= ellipsisWidth {
		return Ellipsis
	}

	runes := []rune(text)
	available := maxWidth - ellipsisWidth
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > available {
			break
		}
		used += w
		start--
	}
	return Ellipsis + string(runes[start:])
}

// Pad fits text into exactly width columns, truncating or right-padding with
// spaces.
func Pad(text string, width int) string {
	text = Truncate(text, width)
	if gap := width - Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
