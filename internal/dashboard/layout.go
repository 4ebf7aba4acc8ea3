// Package dashboard renders the users table, a user's post grid and
// feedback messages for a terminal.
package dashboard

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minWidth     = 40
	ellipsis     = "…"
)

// TerminalWidth returns the width of the terminal behind fd, or 80 when it cannot be read.
func TerminalWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return clampWidth(width)
}

func clampWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	if width < minWidth {
		return minWidth
	}
	return width
}

// cell fits s into exactly width display columns.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

func wrapText(text string, width int) []string {
	var lines []string

	for _, paragraph := range strings.Split(text, "\n") {
		currentLine := ""
		currentWidth := 0

		for _, word := range strings.Fields(paragraph) {
			wordWidth := runewidth.StringWidth(word)
			switch {
			case currentWidth == 0:
				currentLine, currentWidth = word, wordWidth
			case currentWidth+1+wordWidth > width:
				lines = append(lines, currentLine)
				currentLine, currentWidth = word, wordWidth
			default:
				currentLine += " " + word
				currentWidth += 1 + wordWidth
			}
			for currentWidth > width {
				head := runewidth.Truncate(currentLine, width, "")
				if head == "" {
					head = string([]rune(currentLine)[0])
				}
				lines = append(lines, head)
				currentLine = strings.TrimPrefix(currentLine, head)
				currentWidth = runewidth.StringWidth(currentLine)
			}
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
		}
	}

	return lines
}

// clampLines keeps at most n lines, marking the last kept line when text was cut.
func clampLines(lines []string, n, width int) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	last := out[n-1]
	if runewidth.StringWidth(last)+runewidth.StringWidth(ellipsis) > width {
		last = runewidth.Truncate(last, width-runewidth.StringWidth(ellipsis), "")
	}
	out[n-1] = last + ellipsis
	return out
}
