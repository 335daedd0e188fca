// Package console owns the process-wide ambient output sink.
//
// Tasks print through Print, Printf and Println instead of fmt so that a
// running loader session can capture their output. Outside a session the sink
// is os.Stdout.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu  sync.RWMutex
	out io.Writer = os.Stdout
)

// Out returns the current ambient sink.
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// Swap installs w as the ambient sink and returns a function that puts the
// previous sink back. The restore function only acts once.
func Swap(w io.Writer) (restore func()) {
	mu.Lock()
	previous := out
	out = w
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			out = previous
			mu.Unlock()
		})
	}
}

// Print writes to the ambient sink like fmt.Print.
func Print(a ...any) (int, error) {
	return fmt.Fprint(Out(), a...)
}

// Printf writes to the ambient sink like fmt.Printf.
func Printf(format string, a ...any) (int, error) {
	return fmt.Fprintf(Out(), format, a...)
}

// Println writes to the ambient sink like fmt.Println.
func Println(a ...any) (int, error) {
	return fmt.Fprintln(Out(), a...)
}
