package loader

import (
	"time"

	"github.com/harrison/tickline/internal/glyph"
	"github.com/harrison/tickline/internal/models"
)

// Config is the configuration of one loader session. It is copied when the
// session is created and never changes afterwards.
type Config struct {
	// LoadingMessage is shown next to the animation while the task runs.
	LoadingMessage string
	// FinishedMessage replaces the animation when the task succeeds.
	FinishedMessage string
	// Interval is the pause between animation frames.
	Interval time.Duration
	// Color is the color tag of the animation. Unknown tags render without color.
	Color string
	// Mode selects inline or stacked rendering of captured output.
	Mode models.DisplayMode
	// Style names a registered glyph style.
	Style string
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		LoadingMessage:  "Loading...",
		FinishedMessage: "Done!",
		Interval:        100 * time.Millisecond,
		Color:           glyph.DefaultColor,
		Mode:            models.ModeInline,
		Style:           glyph.DefaultStyle,
	}
}

// Validate reports the first configuration problem as a *ConfigurationError.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return &ConfigurationError{Field: "mode", Value: string(c.Mode), Reason: "must be one of: inline, stacked"}
	}
	if c.Interval <= 0 {
		return &ConfigurationError{Field: "interval", Value: c.Interval.String(), Reason: "must be > 0"}
	}
	if _, ok := glyph.Lookup(c.Style); !ok {
		return &ConfigurationError{Field: "style", Value: c.Style, Reason: "is not a registered style"}
	}
	return nil
}
