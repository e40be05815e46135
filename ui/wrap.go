package ui

import "strings"

// wrapText wraps text to fit within width runes. Words longer than a line are
// split with a trailing hyphen.
func wrapText(text string, width int) string {
	if width <= 1 {
		return text
	}

	var sb strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		runes := []rune(word)

		for len(runes) > width {
			if lineLen > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(string(runes[:width-1]) + "-\n")
			runes = runes[width-1:]
			lineLen = 0
		}

		switch {
		case lineLen == 0:
		case lineLen+1+len(runes) > width:
			sb.WriteString("\n")
			lineLen = 0
		default:
			sb.WriteString(" ")
			lineLen++
		}

		sb.WriteString(string(runes))
		lineLen += len(runes)
	}

	return sb.String()
}
