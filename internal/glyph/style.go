// Package glyph holds the animation styles and the color tags used to paint them.
//
// A Style is nothing more than an ordered, cyclic list of frames. All styles
// animate identically; only the frames differ.
package glyph

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultStyle is the style used when none is configured.
const DefaultStyle = "spinner"

// Style is a named, immutable sequence of animation frames.
type Style struct {
	Name        string
	Description string
	frames      []string
}

// NewStyle creates a style from the given frames. Frames are copied.
func NewStyle(name, description string, frames ...string) (Style, error) {
	if name == "" {
		return Style{}, fmt.Errorf("style name cannot be empty")
	}
	if len(frames) == 0 {
		return Style{}, fmt.Errorf("style %q has no frames", name)
	}
	return Style{
		Name:        name,
		Description: description,
		frames:      append([]string(nil), frames...),
	}, nil
}

// Frames returns a copy of the style's frames.
func (s Style) Frames() []string {
	return append([]string(nil), s.frames...)
}

// Len returns the number of frames in the style.
func (s Style) Len() int {
	return len(s.frames)
}

// Cycle returns a new frame cursor positioned at the first frame.
func (s Style) Cycle() *Cycle {
	return &Cycle{frames: s.frames}
}

// Cycle walks a style's frames forever. It is not safe for concurrent use;
// the animation loop is its only caller.
type Cycle struct {
	frames []string
	index  int
}

// Next returns the current frame and advances the cursor, wrapping at the end.
func (c *Cycle) Next() string {
	frame := c.frames[c.index]
	c.index = (c.index + 1) % len(c.frames)
	return frame
}

// Index returns the position of the frame Next will return.
func (c *Cycle) Index() int {
	return c.index
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Style{}
)

// Register adds a style to the registry, replacing any style with the same name.
func Register(s Style) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.Name] = s
}

// Lookup returns the registered style with the given name.
func Lookup(name string) (Style, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// Names returns the registered style names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Styles returns every registered style sorted by name.
func Styles() []Style {
	names := Names()
	styles := make([]Style, 0, len(names))
	for _, name := range names {
		s, _ := Lookup(name)
		styles = append(styles, s)
	}
	return styles
}

func mustRegister(name, description string, frames ...string) {
	s, err := NewStyle(name, description, frames...)
	if err != nil {
		panic(err)
	}
	Register(s)
}

func init() {
	mustRegister("spinner", "A spinning bar",
		"|", "/", "-", "\\")
	mustRegister("dots", "Three circling dots",
		"⡆", "⠇", "⠋", "⠙", "⠸", "⢰", "⣠", "⣄")
	mustRegister("carets", "A caret turning in a circle",
		" ^ ", "  ›", " ⌄ ", "‹  ")
	mustRegister("arrow", "A sliding arrow",
		">----", "->---", "-->--", "--->-", "---->", "-----")
	mustRegister("apple", "An apple sliding back and forth",
		"\uf8ff    ", " \uf8ff   ", "  \uf8ff  ", "   \uf8ff ",
		"    \uf8ff", "   \uf8ff ", "  \uf8ff  ", " \uf8ff   ")
	mustRegister("sliding", "A row of equal signs sliding from side to side",
		"=    ", "==   ", "===  ", "==== ", " ====", "  ===", "   ==", "    =",
		"    =", "   ==", "  ===", " ====", "==== ", "===  ", "==   ", "=    ")
	mustRegister("sliding2", "A row of dashes sliding from side to side",
		"—    ", "——   ", "———  ", "———— ", " ————", "  ———", "   ——", "    —",
		"    —", "   ——", "  ———", " ————", "———— ", "———  ", "——   ", "—    ")
}
