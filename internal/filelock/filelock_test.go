package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := NewFileLock(lockPath)
	require.NotNil(t, lock)
	assert.Equal(t, lockPath, lock.Path())
	assert.False(t, lock.Locked())
}

func TestTryLockContention(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "nested", "terminal.lock")

	first := NewFileLock(lockPath)
	second := NewFileLock(lockPath)

	acquired, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	assert.True(t, first.Locked())

	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired, "second handle must not get a held lock")

	require.NoError(t, first.Unlock())

	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, second.Unlock())
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, AtomicWrite(path, []byte("mode: inline\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mode: inline\n", string(data))

	require.NoError(t, AtomicWrite(path, []byte("mode: stacked\n")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mode: stacked\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestAtomicWriteNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, AtomicWrite(path, []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestConcurrentLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, LockAndWrite(path, []byte(fmt.Sprintf("writer: %d\n", i))))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `^writer: \d\n$`, string(data))
}
