package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const escape = '\x1b'

// VisibleWidth returns the number of cells s occupies, ignoring ANSI CSI sequences.
func VisibleWidth(s string) int {
	width := 0
	walk(s, func(seq string, isEscape bool) bool {
		if !isEscape {
			width += runewidth.StringWidth(seq)
		}
		return true
	})
	return width
}

// Fit cuts s so that it occupies at most width cells. Escape sequences are kept
// and a reset is appended when anything was cut after one.
func Fit(s string, width int) string {
	if width < 0 {
		width = 0
	}
	if VisibleWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	sawEscape := false
	walk(s, func(seq string, isEscape bool) bool {
		if isEscape {
			b.WriteString(seq)
			sawEscape = true
			return true
		}
		w := runewidth.StringWidth(seq)
		if used+w > width {
			return false
		}
		used += w
		b.WriteString(seq)
		return true
	})
	if sawEscape {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// walk calls fn for each rune or complete CSI sequence in s until fn returns false.
func walk(s string, fn func(seq string, isEscape bool) bool) {
	for i := 0; i < len(s); {
		if s[i] == escape && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			if j < len(s) {
				j++
			}
			if !fn(s[i:j], true) {
				return
			}
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if !fn(s[i:i+size], false) {
			return
		}
		i += size
	}
}
