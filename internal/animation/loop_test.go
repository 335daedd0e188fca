package animation

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/tickline/internal/glyph"
)

// recordingScreen keeps every operation in order.
type recordingScreen struct {
	mu      sync.Mutex
	ops     []string
	failOn  int
	draws   int
	failErr error
}

func (s *recordingScreen) ClearLine() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "clear")
	return nil
}

func (s *recordingScreen) Draw(row string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	if s.failOn > 0 && s.draws >= s.failOn {
		return s.failErr
	}
	s.ops = append(s.ops, "draw:"+row)
	return nil
}

func (s *recordingScreen) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

type recordingLogger struct {
	mu     sync.Mutex
	debug  []string
	errors []string
}

func (l *recordingLogger) LogDebug(m string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, m)
}

func (l *recordingLogger) LogError(m string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, m)
}

func testStyle(t *testing.T) glyph.Style {
	t.Helper()
	s, err := glyph.NewStyle("test", "", "a", "b", "c")
	require.NoError(t, err)
	return s
}

func TestNewValidatesOptions(t *testing.T) {
	style := testStyle(t)
	screen := &recordingScreen{}
	compose := func(f string) string { return f }

	tests := []struct {
		name string
		opts Options
	}{
		{name: "no frames", opts: Options{Compose: compose, Screen: screen, Interval: time.Millisecond}},
		{name: "no compose", opts: Options{Frames: style.Cycle(), Screen: screen, Interval: time.Millisecond}},
		{name: "no screen", opts: Options{Frames: style.Cycle(), Compose: compose, Interval: time.Millisecond}},
		{name: "zero interval", opts: Options{Frames: style.Cycle(), Compose: compose, Screen: screen}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.opts)
			assert.Error(t, err)
			assert.Nil(t, l)
		})
	}
}

func TestLoopClearsBeforeEveryDraw(t *testing.T) {
	screen := &recordingScreen{}
	l, err := New(Options{
		Frames:   testStyle(t).Cycle(),
		Compose:  func(f string) string { return "[" + f + "]" },
		Screen:   screen,
		Interval: time.Millisecond,
	})
	require.NoError(t, err)

	l.Start()
	require.Eventually(t, func() bool { return l.Ticks() >= 4 }, time.Second, time.Millisecond)
	l.Stop()

	ops := screen.snapshot()
	require.GreaterOrEqual(t, len(ops), 8)
	frames := []string{"a", "b", "c"}
	for i := 0; i+1 < len(ops); i += 2 {
		assert.Equal(t, "clear", ops[i])
		assert.Equal(t, "draw:["+frames[(i/2)%3]+"]", ops[i+1])
	}
	assert.NoError(t, l.Err())
}

func TestStopIsPromptWithLongInterval(t *testing.T) {
	screen := &recordingScreen{}
	l, err := New(Options{
		Frames:   testStyle(t).Cycle(),
		Compose:  func(f string) string { return f },
		Screen:   screen,
		Interval: time.Hour,
	})
	require.NoError(t, err)

	l.Start()
	require.Eventually(t, func() bool { return l.Ticks() == 1 }, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		l.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return while the loop was sleeping")
	}
	assert.Equal(t, 1, l.Ticks())

	select {
	case <-l.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func TestNoDrawAfterStop(t *testing.T) {
	screen := &recordingScreen{}
	l, err := New(Options{
		Frames:   testStyle(t).Cycle(),
		Compose:  func(f string) string { return f },
		Screen:   screen,
		Interval: time.Millisecond,
	})
	require.NoError(t, err)

	l.Start()
	require.Eventually(t, func() bool { return l.Ticks() >= 2 }, time.Second, time.Millisecond)
	l.Stop()

	n := len(screen.snapshot())
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, screen.snapshot(), n)
}

func TestStopIsIdempotentAndSafeBeforeStart(t *testing.T) {
	l, err := New(Options{
		Frames:   testStyle(t).Cycle(),
		Compose:  func(f string) string { return f },
		Screen:   &recordingScreen{},
		Interval: time.Millisecond,
	})
	require.NoError(t, err)

	l.Stop()
	l.Stop()
	l.Start() // ignored after Stop
	assert.Equal(t, 0, l.Ticks())
}

func TestWriteFailureEndsLoop(t *testing.T) {
	broken := errors.New("broken pipe")
	screen := &recordingScreen{failOn: 3, failErr: broken}
	logger := &recordingLogger{}
	l, err := New(Options{
		Frames:   testStyle(t).Cycle(),
		Compose:  func(f string) string { return f },
		Screen:   screen,
		Interval: time.Millisecond,
		Logger:   logger,
	})
	require.NoError(t, err)

	l.Start()
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit after a write failure")
	}

	var writeErr *TerminalWriteError
	require.ErrorAs(t, l.Err(), &writeErr)
	assert.Equal(t, 3, writeErr.Tick)
	assert.ErrorIs(t, l.Err(), broken)
	assert.Equal(t, 2, l.Ticks())

	l.Stop()
	logger.mu.Lock()
	defer logger.mu.Unlock()
	assert.Len(t, logger.errors, 1)
	assert.NotEmpty(t, logger.debug)
}
