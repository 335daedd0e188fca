package capture

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var redirectMu sync.Mutex

// RedirectStdout points os.Stdout at a pipe whose contents are copied into w.
// The returned restore function reinstates the original os.Stdout, closes the
// pipe and blocks until everything written before the call reached w.
// Restore is safe to call more than once.
func RedirectStdout(w io.Writer) (restore func() error, err error) {
	r, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	redirectMu.Lock()
	original := os.Stdout
	os.Stdout = pw
	redirectMu.Unlock()

	copied := make(chan error, 1)
	go func() {
		_, err := io.Copy(w, r)
		r.Close()
		copied <- err
	}()

	var once sync.Once
	var restoreErr error
	restore = func() error {
		once.Do(func() {
			redirectMu.Lock()
			os.Stdout = original
			redirectMu.Unlock()

			if err := pw.Close(); err != nil {
				restoreErr = fmt.Errorf("failed to close stdout pipe: %w", err)
				return
			}
			if err := <-copied; err != nil {
				restoreErr = fmt.Errorf("failed to copy redirected stdout: %w", err)
			}
		})
		return restoreErr
	}
	return restore, nil
}
