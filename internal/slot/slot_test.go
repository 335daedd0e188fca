package slot

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolder struct {
	id       string
	interval time.Duration
}

func (f fakeHolder) ID() string              { return f.id }
func (f fakeHolder) Interval() time.Duration { return f.interval }

func TestAcquireRelease(t *testing.T) {
	m := NewManager()
	a := fakeHolder{id: "a", interval: time.Millisecond}

	require.NoError(t, m.Acquire(a))
	assert.True(t, m.Held())
	assert.Equal(t, a, m.Current())

	assert.True(t, m.Release(a))
	assert.False(t, m.Held())
	assert.Nil(t, m.Current())

	assert.False(t, m.Release(a), "second release is a no-op")
}

func TestSecondAcquireFailsFast(t *testing.T) {
	m := NewManager()
	a := fakeHolder{id: "a"}
	b := fakeHolder{id: "b"}

	require.NoError(t, m.Acquire(a))
	err := m.Acquire(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
	assert.Equal(t, a, m.Current(), "first holder is untouched")

	assert.False(t, m.Release(b), "non-holder cannot release")
	assert.Equal(t, a, m.Current())
}

func TestAcquireNil(t *testing.T) {
	assert.Error(t, NewManager().Acquire(nil))
}

func TestConcurrentAcquireHasOneWinner(t *testing.T) {
	m := NewManager()
	const contenders = 16

	var wins atomic.Int32
	var wg sync.WaitGroup
	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func(i int) {
			defer wg.Done()
			if m.Acquire(fakeHolder{id: string(rune('a' + i))}) == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestLockFileAcrossManagers(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "terminal.lock")

	first := NewManager()
	second := NewManager()
	require.NoError(t, first.SetLockFile(lockPath))
	require.NoError(t, second.SetLockFile(lockPath))
	assert.Equal(t, lockPath, first.LockFile())

	a := fakeHolder{id: "a"}
	b := fakeHolder{id: "b"}

	require.NoError(t, first.Acquire(a))
	err := second.Acquire(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.True(t, first.Release(a))
	require.NoError(t, second.Acquire(b))
	assert.True(t, second.Release(b))
}

func TestSetLockFileWhileHeld(t *testing.T) {
	m := NewManager()
	a := fakeHolder{id: "a"}
	require.NoError(t, m.Acquire(a))

	err := m.SetLockFile(filepath.Join(t.TempDir(), "x.lock"))
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	m.Release(a)
}
