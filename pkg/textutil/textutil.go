// Package textutil contains small helpers for laying out help text in a terminal.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap splits text into lines no wider than width, breaking on whitespace. Widths are measured in
// terminal cells, not bytes. A single word wider than width is placed on its own line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines         []string
		currentLine   []string
		currentLength int
	)
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentLength+wordWidth+1 > width {
			if len(currentLine) > 0 {
				lines = append(lines, strings.Join(currentLine, " "))
				currentLine = []string{word}
				currentLength = wordWidth
			} else {
				lines = append(lines, word)
			}
		} else {
			currentLine = append(currentLine, word)
			if currentLength == 0 {
				currentLength = wordWidth
			} else {
				currentLength += wordWidth + 1
			}
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces until it occupies width cells. Strings already at least width cells
// wide are returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
