package input

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSettle() time.Duration { return 0 }

// probeReader records the input flag on every read.
type probeReader struct {
	r    io.Reader
	seen []bool
}

func (p *probeReader) Read(b []byte) (int, error) {
	p.seen = append(p.seen, InProgress())
	return p.r.Read(b)
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantEcho string
		wantErr  error
	}{
		{name: "simple", input: "hello\n", want: "hello", wantEcho: "> hello\n"},
		{name: "carriage return ends line", input: "hi\rignored", want: "hi", wantEcho: "> hi\n"},
		{name: "backspace", input: "ab\bc\n", want: "ac", wantEcho: "> ab\b \bc\n"},
		{name: "delete key", input: "ab\x7f\n", want: "a", wantEcho: "> ab\b \b\n"},
		{name: "backspace on empty", input: "\x7fx\n", want: "x", wantEcho: "> x\n"},
		{name: "multibyte backspace", input: "aé\x7f\n", want: "a", wantEcho: "> aé\b \b\n"},
		{name: "eof with text", input: "tail", want: "tail", wantEcho: "> tail\n"},
		{name: "eof empty", input: "", wantErr: io.EOF, wantEcho: "> \n"},
		{name: "ctrl-d on empty", input: "\x04", wantErr: io.EOF, wantEcho: "> \n"},
		{name: "ctrl-c", input: "ab\x03", wantErr: ErrInterrupted, wantEcho: "> ab\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := &Reader{In: strings.NewReader(tt.input), Out: &out, Settle: noSettle}

			got, err := r.ReadLine("> ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantEcho, out.String())
			assert.False(t, InProgress(), "flag must be cleared after the read")
		})
	}
}

func TestReadPasswordDoesNotEcho(t *testing.T) {
	var out bytes.Buffer
	r := &Reader{In: strings.NewReader("s3cret\n"), Out: &out, Settle: noSettle}

	got, err := r.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestFlagSetDuringRead(t *testing.T) {
	probe := &probeReader{r: strings.NewReader("ok\n")}
	r := &Reader{In: probe, Out: io.Discard, Settle: noSettle}

	_, err := r.ReadLine("")
	require.NoError(t, err)

	require.NotEmpty(t, probe.seen)
	for _, v := range probe.seen {
		assert.True(t, v)
	}
	assert.False(t, InProgress())
}

func TestSettlePause(t *testing.T) {
	r := &Reader{
		In:     strings.NewReader("x\n"),
		Out:    io.Discard,
		Settle: func() time.Duration { return 20 * time.Millisecond },
	}

	start := time.Now()
	_, err := r.ReadLine("")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestBeginEnd(t *testing.T) {
	Begin()
	assert.True(t, InProgress())
	End()
	assert.False(t, InProgress())
}
