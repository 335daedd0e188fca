// Package input reads user input while a loader animation may be running.
//
// While a read is in progress the process-wide InProgress flag is set, which
// makes the formatter fall back to inline rendering so the line being typed is
// not pushed around. After a read completes the reader sleeps one tick
// interval of the active session so the animation can redraw before the
// caller prints anything else. Any other line reader used alongside a session
// must follow the same contract.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/harrison/tickline/internal/console"
	"github.com/harrison/tickline/internal/slot"
)

// ErrInterrupted is returned when the user presses Ctrl-C during a raw read.
var ErrInterrupted = errors.New("input interrupted")

var inProgress atomic.Bool

// InProgress reports whether a user is currently typing.
func InProgress() bool {
	return inProgress.Load()
}

// Begin sets the input flag. External line readers call it before reading.
func Begin() {
	inProgress.Store(true)
}

// End clears the input flag and waits one tick of the active session.
func End() {
	inProgress.Store(false)
	time.Sleep(activeInterval())
}

func activeInterval() time.Duration {
	if h := slot.Default.Current(); h != nil {
		return h.Interval()
	}
	return 0
}

// Reader reads lines from In, echoing to Out.
type Reader struct {
	// In defaults to os.Stdin.
	In io.Reader
	// Out defaults to the ambient console sink, which is the session's
	// capture while a loader runs.
	Out io.Writer
	// Settle returns how long to pause after a read; defaults to the active
	// session's tick interval.
	Settle func() time.Duration
}

// ReadLine reads a line from stdin after printing prompt.
func ReadLine(prompt string) (string, error) {
	return (&Reader{}).ReadLine(prompt)
}

// ReadPassword reads a line from stdin without echo after printing prompt.
func ReadPassword(prompt string) (string, error) {
	return (&Reader{}).ReadPassword(prompt)
}

func (r *Reader) in() io.Reader {
	if r.In == nil {
		return os.Stdin
	}
	return r.In
}

func (r *Reader) out() io.Writer {
	if r.Out == nil {
		return console.Out()
	}
	return r.Out
}

func (r *Reader) begin() {
	inProgress.Store(true)
}

func (r *Reader) end() {
	inProgress.Store(false)
	settle := activeInterval
	if r.Settle != nil {
		settle = r.Settle
	}
	time.Sleep(settle())
}

// terminalFd returns the descriptor of In when it is an interactive terminal.
func (r *Reader) terminalFd() (int, bool) {
	f, ok := r.in().(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return 0, false
	}
	return int(f.Fd()), true
}

// ReadLine prints prompt, then reads and echoes characters until Enter.
// Backspace removes the last character. On a terminal the input is switched
// to raw mode for the duration of the read.
func (r *Reader) ReadLine(prompt string) (string, error) {
	r.begin()
	defer r.end()

	out := r.out()
	fmt.Fprint(out, prompt)

	var line string
	var err error
	if fd, ok := r.terminalFd(); ok {
		state, rawErr := term.MakeRaw(fd)
		if rawErr != nil {
			return "", fmt.Errorf("failed to enter raw mode: %w", rawErr)
		}
		line, err = readEditedLine(r.in(), out, true)
		if restoreErr := term.Restore(fd, state); restoreErr != nil && err == nil {
			err = fmt.Errorf("failed to restore terminal: %w", restoreErr)
		}
	} else {
		line, err = readEditedLine(r.in(), out, true)
	}

	// Keep whatever is printed next on its own line.
	fmt.Fprintln(out)
	return line, err
}

// ReadPassword prints prompt and reads a line without echoing it.
func (r *Reader) ReadPassword(prompt string) (string, error) {
	r.begin()
	defer r.end()

	out := r.out()
	fmt.Fprint(out, prompt)

	var line string
	var err error
	if fd, ok := r.terminalFd(); ok {
		var b []byte
		b, err = term.ReadPassword(fd)
		line = string(b)
		if err != nil {
			err = fmt.Errorf("failed to read password: %w", err)
		}
	} else {
		line, err = readEditedLine(r.in(), out, false)
	}

	fmt.Fprintln(out)
	return line, err
}

const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
	keyBackspace = '\b'
	keyDelete    = 0x7f
)

// readEditedLine reads one byte at a time so it works in raw mode, where the
// terminal does no line editing of its own.
func readEditedLine(in io.Reader, out io.Writer, echo bool) (string, error) {
	var buf []byte
	one := make([]byte, 1)

	for {
		n, err := in.Read(one)
		if n == 0 {
			if err == io.EOF {
				if len(buf) > 0 {
					return string(buf), nil
				}
				return "", io.EOF
			}
			if err != nil {
				return string(buf), fmt.Errorf("failed to read input: %w", err)
			}
			continue
		}

		switch c := one[0]; c {
		case '\n', '\r':
			return string(buf), nil
		case keyInterrupt:
			return "", ErrInterrupted
		case keyEOF:
			if len(buf) == 0 {
				return "", io.EOF
			}
		case keyBackspace, keyDelete:
			if len(buf) == 0 {
				continue
			}
			_, size := utf8.DecodeLastRune(buf)
			buf = buf[:len(buf)-size]
			if echo {
				fmt.Fprint(out, "\b \b")
			}
		default:
			buf = append(buf, c)
			if echo {
				out.Write(one)
			}
		}
	}
}
