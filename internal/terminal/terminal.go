// Package terminal writes the animation row to the real terminal.
//
// Every clear queries the terminal width again, so the row keeps working when
// the window is resized between ticks.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when the width cannot be queried.
const DefaultWidth = 80

// fdWriter is implemented by *os.File.
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// Terminal is the real output the animation row is drawn on.
type Terminal struct {
	out   io.Writer
	width func() int
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithWidthFunc overrides the width query.
func WithWidthFunc(fn func() int) Option {
	return func(t *Terminal) {
		t.width = fn
	}
}

// New returns a Terminal writing to out.
func New(out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{out: out}
	t.width = t.queryWidth
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stdout returns a Terminal bound to the process's current os.Stdout file.
// It must be created before os.Stdout is redirected.
func Stdout(opts ...Option) *Terminal {
	return New(os.Stdout, opts...)
}

// Out returns the underlying writer.
func (t *Terminal) Out() io.Writer {
	return t.out
}

// IsTerminal reports whether the output is an interactive terminal.
func (t *Terminal) IsTerminal() bool {
	f, ok := t.out.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Width returns the current column count.
func (t *Terminal) Width() int {
	w := t.width()
	if w <= 0 {
		return DefaultWidth
	}
	return w
}

func (t *Terminal) queryWidth() int {
	if f, ok := t.out.(fdWriter); ok && t.IsTerminal() {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return DefaultWidth
}

// ClearLine blanks the current row and returns the cursor to its start.
func (t *Terminal) ClearLine() error {
	return t.write("\r" + strings.Repeat(" ", t.Width()) + "\r")
}

// Draw writes s at the start of the current row without a trailing newline.
// The last row of s is cut to fit the terminal so it never wraps.
func (t *Terminal) Draw(s string) error {
	head, last := "", s
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		head, last = s[:i+1], s[i+1:]
	}
	return t.write("\r" + head + Fit(last, t.Width()-1))
}

// Finish writes msg on the current row and ends the line.
func (t *Terminal) Finish(msg string) error {
	return t.write("\r" + msg + "\n")
}

func (t *Terminal) write(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return fmt.Errorf("failed to write to terminal: %w", err)
	}
	return nil
}
