package picker

import (
	"regexp"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

const ellipsis = "..."

// truncateText truncates text to maxWidth runes with an ellipsis.
func truncateText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text
	}
	if maxWidth <= len(ellipsis) {
		return ellipsis[:maxWidth]
	}
	runes := []rune(text)
	return string(runes[:maxWidth-len(ellipsis)]) + ellipsis
}

// visibleRange computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func visibleRange(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
