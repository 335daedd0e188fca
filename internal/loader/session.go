// Package loader runs a task under a terminal progress animation.
//
// A Session takes over the terminal line and the ambient console sink for the
// lifetime of one task: whatever the task prints is captured and re-rendered
// next to (inline) or above (stacked) the animation instead of colliding with
// it. Only one session can run per process at a time.
//
//	s, err := loader.New(loader.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	return s.Run(func() error {
//	    console.Println("step 1")
//	    return doWork()
//	})
package loader

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/tickline/internal/animation"
	"github.com/harrison/tickline/internal/capture"
	"github.com/harrison/tickline/internal/console"
	"github.com/harrison/tickline/internal/format"
	"github.com/harrison/tickline/internal/glyph"
	"github.com/harrison/tickline/internal/logger"
	"github.com/harrison/tickline/internal/models"
	"github.com/harrison/tickline/internal/slot"
	"github.com/harrison/tickline/internal/terminal"
)

// Logger receives session lifecycle events.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSessionStart(id, style string, mode models.DisplayMode)
	LogSessionStop(summary models.SessionSummary)
}

// Session is a one-shot loader run: idle, running, stopping, stopped.
type Session struct {
	id             string
	cfg            Config
	style          glyph.Style
	capture        *capture.Capture
	formatter      *format.Formatter
	term           *terminal.Terminal
	loop           *animation.Loop
	slots          *slot.Manager
	logger         Logger
	redirectStdout bool
	formatOpts     []format.Option

	mu             sync.Mutex
	state          models.SessionState
	errorInProcess bool
	startedAt      time.Time
	restoreConsole func()
	restoreStdout  func() error
}

// Option configures a Session.
type Option func(*Session)

// WithTerminal draws on t instead of the process's stdout.
func WithTerminal(t *terminal.Terminal) Option {
	return func(s *Session) {
		s.term = t
	}
}

// WithSlots uses m instead of slot.Default to guard the terminal.
func WithSlots(m *slot.Manager) Option {
	return func(s *Session) {
		s.slots = m
	}
}

// WithLogger sends lifecycle events to l.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRedirectStdout also points os.Stdout at the capture while running, for
// tasks that print with fmt directly instead of through the console package.
func WithRedirectStdout(enabled bool) Option {
	return func(s *Session) {
		s.redirectStdout = enabled
	}
}

// WithColorEnabled forces the animation color on or off.
func WithColorEnabled(enabled bool) Option {
	return func(s *Session) {
		s.formatOpts = append(s.formatOpts, format.WithColorEnabled(enabled))
	}
}

// WithInputSignal overrides the user-input-in-progress signal.
func WithInputSignal(fn func() bool) Option {
	return func(s *Session) {
		s.formatOpts = append(s.formatOpts, format.WithSuspended(fn))
	}
}

// New validates cfg and builds an idle session.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	style, _ := glyph.Lookup(cfg.Style)

	s := &Session{
		id:      uuid.NewString(),
		cfg:     cfg,
		style:   style,
		capture: capture.New(),
		slots:   slot.Default,
		logger:  logger.NewNoOpLogger(),
		state:   models.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.term == nil {
		s.term = terminal.Stdout()
	}

	f, err := format.New(cfg.Mode, cfg.LoadingMessage, cfg.Color, s.formatOpts...)
	if err != nil {
		var modeErr *format.ConfigurationError
		if errors.As(err, &modeErr) {
			return nil, &ConfigurationError{Field: "mode", Value: string(modeErr.Mode), Reason: "must be one of: inline, stacked", Err: err}
		}
		return nil, err
	}
	s.formatter = f

	loop, err := animation.New(animation.Options{
		Frames:   style.Cycle(),
		Compose:  func(frame string) string { return s.formatter.Compose(frame, s.capture) },
		Screen:   s.term,
		Interval: cfg.Interval,
		Logger:   s.logger,
	})
	if err != nil {
		return nil, err
	}
	s.loop = loop

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Interval returns the animation tick interval.
func (s *Session) Interval() time.Duration {
	return s.cfg.Interval
}

// Config returns the session's configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Writer returns the capture the task should print to. Writing to it is
// equivalent to printing through the console package while the session runs.
func (s *Session) Writer() io.Writer {
	return s.capture
}

// State returns the current lifecycle state.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Fail marks the task as failed so Stop suppresses the finished message.
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorInProcess = true
}

// Failed reports whether Fail was called.
func (s *Session) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorInProcess
}

// Start takes over the terminal and begins animating. It returns at once.
// If another session is running it returns ErrAlreadyRunning without touching
// any terminal state.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateIdle {
		return fmt.Errorf("session %s is %s: %w", s.id, s.state, ErrNotRestartable)
	}
	if err := s.slots.Acquire(s); err != nil {
		return err
	}

	s.capture.Reset()
	s.formatter.Reset()
	s.restoreConsole = console.Swap(s.capture)

	if s.redirectStdout {
		restore, err := capture.RedirectStdout(s.capture)
		if err != nil {
			s.restoreConsole()
			s.slots.Release(s)
			return err
		}
		s.restoreStdout = restore
	}

	s.state = models.StateRunning
	s.startedAt = time.Now()
	s.loop.Start()
	s.logger.LogSessionStart(s.id, s.style.Name, s.cfg.Mode)
	return nil
}

// Stop halts the animation, gives the terminal and console back, and prints
// the finished message, or only clears the line when the task failed.
// Calling Stop on a session that is not running does nothing.
// It returns the *TerminalWriteError that killed the animation, if any.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state != models.StateRunning {
		s.mu.Unlock()
		return nil
	}
	s.state = models.StateStopping
	failed := s.errorInProcess
	s.mu.Unlock()

	s.loop.Stop()
	s.slots.Release(s)

	var restoreErr error
	if s.restoreStdout != nil {
		restoreErr = s.restoreStdout()
	}
	s.restoreConsole()

	err := s.loop.Err()
	if err == nil {
		err = s.finish(failed)
	}

	summary := models.SessionSummary{
		ID:       s.id,
		Style:    s.style.Name,
		Mode:     s.cfg.Mode,
		Duration: time.Since(s.startedAt),
		Ticks:    s.loop.Ticks(),
		Lines:    len(s.capture.AllLines()),
		Failed:   failed,
		Err:      err,
	}
	s.logger.LogSessionStop(summary)
	s.capture.Reset()

	s.mu.Lock()
	s.state = models.StateStopped
	s.mu.Unlock()

	if err != nil {
		return err
	}
	return restoreErr
}

// finish writes the last frame of the session to the terminal.
func (s *Session) finish(failed bool) error {
	if line, ok := s.formatter.Pending(s.capture); ok {
		if err := s.term.ClearLine(); err != nil {
			return err
		}
		if err := s.term.Finish(line); err != nil {
			return err
		}
	}

	if err := s.term.ClearLine(); err != nil {
		return err
	}
	if failed {
		return s.term.Finish("")
	}
	return s.term.Finish(s.cfg.FinishedMessage)
}

// Run starts the session, calls fn, and always stops the session afterwards.
// fn's error is returned unchanged; a panic in fn is re-raised after the
// terminal has been restored.
func (s *Session) Run(fn func() error) error {
	if err := s.Start(); err != nil {
		return err
	}

	panicked := true
	defer func() {
		if panicked {
			s.Fail()
			s.Stop()
		}
	}()

	taskErr := fn()
	panicked = false

	if taskErr != nil {
		s.Fail()
	}
	stopErr := s.Stop()
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}
