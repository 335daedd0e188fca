package glyph

import (
	"sort"
	"strings"

	"github.com/fatih/color"
)

// DefaultColor is the color tag used when none is configured. It renders bold only.
const DefaultColor = "white"

// colorAttributes maps color tags to their foreground attributes.
// Every frame is painted bold on top of its color.
var colorAttributes = map[string][]color.Attribute{
	"white":    nil,
	"blue":     {color.FgHiBlue},
	"purple":   {color.FgHiMagenta},
	"cyan":     {color.FgHiCyan},
	"darkcyan": {color.FgCyan},
	"green":    {color.FgHiGreen},
	"yellow":   {color.FgHiYellow},
	"red":      {color.FgHiRed},
}

// KnownColor reports whether tag names a supported color.
func KnownColor(tag string) bool {
	_, ok := colorAttributes[normalizeColor(tag)]
	return ok
}

// ColorNames returns the supported color tags in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(colorAttributes))
	for name := range colorAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeColor(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Painter wraps frames in the SGR sequences for one color tag.
// Unknown tags degrade to bold with no color.
type Painter struct {
	c *color.Color
}

// NewPainter returns a painter for tag. Whether escape codes are emitted
// follows fatih/color's terminal detection until SetEnabled is called.
func NewPainter(tag string) *Painter {
	attrs := append([]color.Attribute(nil), colorAttributes[normalizeColor(tag)]...)
	attrs = append(attrs, color.Bold)
	return &Painter{c: color.New(attrs...)}
}

// SetEnabled forces escape codes on or off regardless of terminal detection.
func (p *Painter) SetEnabled(enabled bool) {
	if enabled {
		p.c.EnableColor()
		return
	}
	p.c.DisableColor()
}

// Paint returns frame wrapped in the painter's color, bold and reset codes.
func (p *Painter) Paint(frame string) string {
	return p.c.Sprint(frame)
}

// Colorize paints frame with tag using terminal detection.
func Colorize(frame, tag string) string {
	return NewPainter(tag).Paint(frame)
}
