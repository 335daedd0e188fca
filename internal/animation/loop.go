// Package animation drives the tick loop that redraws the animation row.
package animation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harrison/tickline/internal/glyph"
)

// Screen is where frames are drawn. *terminal.Terminal satisfies it.
type Screen interface {
	ClearLine() error
	Draw(s string) error
}

// Logger receives loop diagnostics.
type Logger interface {
	LogDebug(message string)
	LogError(message string)
}

// TerminalWriteError wraps a failed write to the screen. The loop stops on
// the first one and never retries.
type TerminalWriteError struct {
	Tick int
	Err  error
}

func (e *TerminalWriteError) Error() string {
	return fmt.Sprintf("terminal write failed on tick %d: %v", e.Tick, e.Err)
}

func (e *TerminalWriteError) Unwrap() error {
	return e.Err
}

// Options configures a Loop.
type Options struct {
	Frames   *glyph.Cycle
	Compose  func(frame string) string
	Screen   Screen
	Interval time.Duration
	Logger   Logger
}

// Loop advances a glyph cycle on its own goroutine, drawing one composed row
// per interval until stopped.
type Loop struct {
	opts Options

	done   chan struct{}
	exited chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
	ticks   int
	err     error
}

// New validates opts and returns a stopped loop.
func New(opts Options) (*Loop, error) {
	switch {
	case opts.Frames == nil:
		return nil, errors.New("animation loop requires frames")
	case opts.Compose == nil:
		return nil, errors.New("animation loop requires a compose function")
	case opts.Screen == nil:
		return nil, errors.New("animation loop requires a screen")
	case opts.Interval <= 0:
		return nil, fmt.Errorf("animation interval must be > 0, got %v", opts.Interval)
	}
	return &Loop{
		opts:   opts,
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}, nil
}

// Start launches the tick goroutine. It does nothing if the loop was already
// started or stopped.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	l.logDebug(fmt.Sprintf("animation loop started (interval %v)", l.opts.Interval))
	go l.run()
}

// Stop signals the goroutine and waits for it to exit. The goroutine watches
// the signal while sleeping, so Stop does not wait out the interval.
// Stop is safe to call more than once and before Start.
func (l *Loop) Stop() {
	l.mu.Lock()
	started := l.started
	if !l.stopped {
		l.stopped = true
		close(l.done)
	}
	l.mu.Unlock()

	if started {
		<-l.exited
		l.logDebug(fmt.Sprintf("animation loop stopped after %d ticks", l.Ticks()))
	}
}

// Done is closed once a started loop's goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.exited
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Err returns the *TerminalWriteError that ended the loop, if any.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Loop) run() {
	defer close(l.exited)

	timer := time.NewTimer(l.opts.Interval)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-l.done:
			return
		default:
		}

		if err := l.tick(); err != nil {
			l.mu.Lock()
			l.err = err
			l.mu.Unlock()
			l.logError(err.Error())
			return
		}

		timer.Reset(l.opts.Interval)
		select {
		case <-l.done:
			return
		case <-timer.C:
		}
	}
}

func (l *Loop) tick() error {
	frame := l.opts.Frames.Next()
	row := l.opts.Compose(frame)

	l.mu.Lock()
	n := l.ticks + 1
	l.mu.Unlock()

	if err := l.opts.Screen.ClearLine(); err != nil {
		return &TerminalWriteError{Tick: n, Err: err}
	}
	if err := l.opts.Screen.Draw(row); err != nil {
		return &TerminalWriteError{Tick: n, Err: err}
	}

	l.mu.Lock()
	l.ticks = n
	l.mu.Unlock()
	return nil
}

func (l *Loop) logDebug(message string) {
	if l.opts.Logger != nil {
		l.opts.Logger.LogDebug(message)
	}
}

func (l *Loop) logError(message string) {
	if l.opts.Logger != nil {
		l.opts.Logger.LogError(message)
	}
}
