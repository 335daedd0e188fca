package capture

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectStdout(t *testing.T) {
	original := os.Stdout
	c := New()

	restore, err := RedirectStdout(c)
	require.NoError(t, err)
	assert.NotSame(t, original, os.Stdout)

	fmt.Println("captured line")
	fmt.Print("partial")

	require.NoError(t, restore())
	assert.Same(t, original, os.Stdout)
	assert.Equal(t, "captured line\npartial", c.String())

	// Second restore is a no-op.
	assert.NoError(t, restore())
	assert.Same(t, original, os.Stdout)
}

func TestRedirectStdoutRestoresAfterPanic(t *testing.T) {
	original := os.Stdout
	c := New()

	func() {
		defer func() { recover() }()
		restore, err := RedirectStdout(c)
		require.NoError(t, err)
		defer restore()
		panic("task failed")
	}()

	assert.Same(t, original, os.Stdout)
}
