// Package capture provides the in-memory sink that stands in for the terminal
// while a loader session runs, plus helpers to redirect os.Stdout into it.
package capture

import (
	"strings"
	"sync"
)

// Capture accumulates text written by a task. It is safe for concurrent use:
// the task goroutine writes while the animation goroutine reads.
type Capture struct {
	mu  sync.Mutex
	buf strings.Builder
}

// New returns an empty Capture.
func New() *Capture {
	return &Capture{}
}

// Write appends p to the buffer. It never fails.
func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Write(p)
	return len(p), nil
}

// WriteString appends s to the buffer. It never fails.
func (c *Capture) WriteString(s string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.WriteString(s)
	return len(s), nil
}

// String returns everything written since the last reset.
func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Len returns the number of buffered bytes.
func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

// LatestLine returns the most recent non-empty line with trailing newlines
// stripped. A final line that has no newline yet still counts. The boolean is
// false when there is nothing to show.
func (c *Capture) LatestLine() (string, bool) {
	return latestLine(c.String())
}

// AllLines returns the buffer split on newlines with trailing empty lines removed.
func (c *Capture) AllLines() []string {
	text := strings.TrimRight(c.String(), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Reset discards the buffered text.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}

// Drain returns the buffered text and clears the buffer in one step.
func (c *Capture) Drain() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := c.buf.String()
	c.buf.Reset()
	return text
}

func latestLine(text string) (string, bool) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return "", false
	}
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	// A bare carriage return rewinds the line; only what follows is visible.
	if i := strings.LastIndexByte(text, '\r'); i >= 0 {
		text = text[i+1:]
	}
	if text == "" {
		return "", false
	}
	return text, true
}
