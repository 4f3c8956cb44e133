package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Indent is the left margin of wrapped descriptions.
const Indent = 4

// Wrap packs the space-separated words of text onto lines of at most cols
// terminal cells, each prefixed with indent spaces. With cols <= 0 the text
// is returned as a single indented line. Words are never split; a word wider
// than the available room gets a line of its own.
func Wrap(text string, indent, cols int) string {
	pad := strings.Repeat(" ", indent)
	if cols <= 0 {
		return pad + text + "\n"
	}
	var b strings.Builder
	b.WriteString(pad)
	width := indent
	lineStart := true
	for _, w := range strings.Split(text, " ") {
		ww := runewidth.StringWidth(w)
		if !lineStart && width+1+ww > cols {
			b.WriteString("\n")
			b.WriteString(pad)
			width = indent
			lineStart = true
		}
		if !lineStart {
			b.WriteByte(' ')
			width++
		}
		b.WriteString(w)
		width += ww
		lineStart = false
	}
	b.WriteString("\n")
	return b.String()
}
