package loader

import (
	"errors"
	"fmt"

	"github.com/harrison/tickline/internal/animation"
	"github.com/harrison/tickline/internal/slot"
)

// ErrAlreadyRunning is returned by Start when another session owns the terminal.
var ErrAlreadyRunning = slot.ErrAlreadyRunning

// ErrNotRestartable is returned by Start on a session that already ran.
var ErrNotRestartable = errors.New("loader session cannot be restarted")

// TerminalWriteError is the failure that ends an animation loop.
type TerminalWriteError = animation.TerminalWriteError

// ConfigurationError reports an invalid session configuration. It is fatal:
// the session is never created.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
