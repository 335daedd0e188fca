// Package format composes the string drawn on the animation row each tick.
//
// Two display modes exist. Inline docks the latest captured line to the right
// of the animation on every tick. Stacked pushes each new captured line onto
// its own row above the animation exactly once, then keeps animating below it.
package format

import (
	"fmt"
	"sync"

	"github.com/harrison/tickline/internal/glyph"
	"github.com/harrison/tickline/internal/input"
	"github.com/harrison/tickline/internal/models"
)

// ConfigurationError reports a formatter that cannot be built.
type ConfigurationError struct {
	Mode models.DisplayMode
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized display mode %q", string(e.Mode))
}

// LineSource yields the most recent captured line.
// *capture.Capture satisfies it.
type LineSource interface {
	LatestLine() (string, bool)
}

// Formatter builds the animation row. Compose is called from the animation
// goroutine; the mutex only guards the stacked-mode history against Pending
// and Reset calls made by the session.
type Formatter struct {
	mode      models.DisplayMode
	message   string
	painter   *glyph.Painter
	suspended func() bool

	mu          sync.Mutex
	lastFlushed string
	flushed     bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithSuspended overrides the user-input signal. While it returns true the
// formatter renders inline regardless of mode.
func WithSuspended(fn func() bool) Option {
	return func(f *Formatter) {
		f.suspended = fn
	}
}

// WithColorEnabled forces color escape codes on or off.
func WithColorEnabled(enabled bool) Option {
	return func(f *Formatter) {
		f.painter.SetEnabled(enabled)
	}
}

// New returns a Formatter for mode. An unknown mode is a *ConfigurationError.
func New(mode models.DisplayMode, loadingMessage, colorTag string, opts ...Option) (*Formatter, error) {
	if !mode.Valid() {
		return nil, &ConfigurationError{Mode: mode}
	}

	f := &Formatter{
		mode:      mode,
		message:   loadingMessage,
		painter:   glyph.NewPainter(colorTag),
		suspended: input.InProgress,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Mode returns the configured display mode.
func (f *Formatter) Mode() models.DisplayMode {
	return f.mode
}

// Animation returns the painted frame followed by the loading message.
func (f *Formatter) Animation(frame string) string {
	return f.painter.Paint(frame) + " " + f.message
}

// Compose returns the row to draw for frame given what the task has printed.
func (f *Formatter) Compose(frame string, src LineSource) string {
	anim := f.Animation(frame)

	line, ok := src.LatestLine()
	if !ok {
		return anim
	}

	if f.mode == models.ModeInline || f.suspended() {
		return anim + " " + line
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flushed && line == f.lastFlushed {
		return anim
	}
	f.lastFlushed = line
	f.flushed = true
	return line + "\n" + anim
}

// Pending returns the latest captured line when stacked mode has not
// flushed it yet. Inline mode never has pending lines.
func (f *Formatter) Pending(src LineSource) (string, bool) {
	if f.mode != models.ModeStacked {
		return "", false
	}
	line, ok := src.LatestLine()
	if !ok {
		return "", false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flushed && line == f.lastFlushed {
		return "", false
	}
	f.lastFlushed = line
	f.flushed = true
	return line, true
}

// Reset forgets the last flushed line.
func (f *Formatter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFlushed = ""
	f.flushed = false
}
