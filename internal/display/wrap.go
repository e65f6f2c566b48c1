package display

import (
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the line width story text is wrapped to. Terminal
// clients narrower than this soft-wrap on their own.
const DefaultWidth = 80

// Wrap word-wraps story text to DefaultWidth, preserving ANSI escape
// sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}
