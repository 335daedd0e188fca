package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/tickline/internal/capture"
	"github.com/harrison/tickline/internal/glyph"
	"github.com/harrison/tickline/internal/models"
)

func never() bool  { return false }
func always() bool { return true }

func newFormatter(t *testing.T, mode models.DisplayMode, opts ...Option) *Formatter {
	t.Helper()
	opts = append([]Option{WithSuspended(never), WithColorEnabled(true)}, opts...)
	f, err := New(mode, "Loading...", "blue", opts...)
	require.NoError(t, err)
	return f
}

func paint(frame string) string {
	p := glyph.NewPainter("blue")
	p.SetEnabled(true)
	return p.Paint(frame)
}

func TestNewRejectsUnknownMode(t *testing.T) {
	f, err := New(models.DisplayMode("diagonal"), "Loading...", "white")
	assert.Nil(t, f)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, models.DisplayMode("diagonal"), cfgErr.Mode)
	assert.Contains(t, err.Error(), "diagonal")
}

func TestComposeWithoutOutput(t *testing.T) {
	for _, mode := range []models.DisplayMode{models.ModeInline, models.ModeStacked} {
		t.Run(string(mode), func(t *testing.T) {
			f := newFormatter(t, mode)
			got := f.Compose("|", capture.New())
			assert.Equal(t, paint("|")+" Loading...", got)
		})
	}
}

func TestComposeInline(t *testing.T) {
	f := newFormatter(t, models.ModeInline)
	c := capture.New()
	c.WriteString("hello\n")

	want := paint("G") + " Loading... hello"
	assert.Equal(t, want, f.Compose("G", c))
	// Every tick re-renders the same line.
	assert.Equal(t, want, f.Compose("G", c))
	assert.Equal(t, "hello\n", c.String(), "inline mode never mutates the buffer")
}

func TestComposeInlineShowsLatestLine(t *testing.T) {
	f := newFormatter(t, models.ModeInline)
	c := capture.New()
	c.WriteString("one\n")
	assert.Equal(t, paint("|")+" Loading... one", f.Compose("|", c))

	c.WriteString("two\n")
	assert.Equal(t, paint("/")+" Loading... two", f.Compose("/", c))
}

func TestComposeStackedDedup(t *testing.T) {
	f := newFormatter(t, models.ModeStacked)
	c := capture.New()
	c.WriteString("x\n")

	anim := paint("|") + " Loading..."
	assert.Equal(t, "x\n"+anim, f.Compose("|", c))
	assert.Equal(t, anim, f.Compose("|", c), "same line must not be stacked twice")
	assert.Equal(t, anim, f.Compose("|", c))
}

func TestComposeStackedPromotionOnChange(t *testing.T) {
	f := newFormatter(t, models.ModeStacked)
	c := capture.New()
	anim := paint("-") + " Loading..."

	c.WriteString("x\n")
	assert.Equal(t, "x\n"+anim, f.Compose("-", c))

	c.Reset()
	c.WriteString("y\n")
	assert.Equal(t, "y\n"+anim, f.Compose("-", c))
	assert.Equal(t, anim, f.Compose("-", c))

	c.WriteString("z\n")
	assert.Equal(t, "z\n"+anim, f.Compose("-", c))
}

func TestComposeStackedFallsBackToInlineDuringInput(t *testing.T) {
	typing := true
	f := newFormatter(t, models.ModeStacked, WithSuspended(func() bool { return typing }))
	c := capture.New()
	c.WriteString("Name: bo")

	anim := paint("|") + " Loading..."
	assert.Equal(t, anim+" Name: bo", f.Compose("|", c))
	assert.Equal(t, anim+" Name: bo", f.Compose("|", c))

	typing = false
	c.WriteString("b\n")
	assert.Equal(t, "Name: bob\n"+anim, f.Compose("|", c), "input rendering does not count as flushed")
}

func TestComposeInlineIgnoresSuspension(t *testing.T) {
	f := newFormatter(t, models.ModeInline, WithSuspended(always))
	c := capture.New()
	c.WriteString("a\n")
	assert.Equal(t, paint("|")+" Loading... a", f.Compose("|", c))
}

func TestPending(t *testing.T) {
	c := capture.New()

	inline := newFormatter(t, models.ModeInline)
	c.WriteString("x\n")
	_, ok := inline.Pending(c)
	assert.False(t, ok)

	stacked := newFormatter(t, models.ModeStacked)
	line, ok := stacked.Pending(c)
	require.True(t, ok)
	assert.Equal(t, "x", line)

	_, ok = stacked.Pending(c)
	assert.False(t, ok, "a pending line is only reported once")

	stacked.Compose("|", c)
	c.WriteString("partial")
	line, ok = stacked.Pending(c)
	require.True(t, ok)
	assert.Equal(t, "partial", line)
}

func TestReset(t *testing.T) {
	f := newFormatter(t, models.ModeStacked)
	c := capture.New()
	c.WriteString("x\n")

	anim := paint("|") + " Loading..."
	assert.Equal(t, "x\n"+anim, f.Compose("|", c))
	f.Reset()
	assert.Equal(t, "x\n"+anim, f.Compose("|", c))
}

func TestColorDisabled(t *testing.T) {
	f, err := New(models.ModeInline, "Working", "red", WithColorEnabled(false), WithSuspended(never))
	require.NoError(t, err)
	assert.Equal(t, "* Working", f.Compose("*", capture.New()))
	assert.Equal(t, models.ModeInline, f.Mode())
}
