// Package models defines the types shared between tickline's packages.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DisplayMode selects how captured output is shown next to the animation.
type DisplayMode string

const (
	// ModeInline docks the latest captured line to the right of the animation.
	ModeInline DisplayMode = "inline"
	// ModeStacked pushes each new captured line onto its own row above the animation.
	ModeStacked DisplayMode = "stacked"
)

// ParseDisplayMode normalizes s into a DisplayMode.
// "newline" is accepted as an alias for stacked.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeInline):
		return ModeInline, nil
	case string(ModeStacked), "newline":
		return ModeStacked, nil
	default:
		return "", fmt.Errorf("unrecognized display mode %q, must be one of: inline, stacked", s)
	}
}

// Valid reports whether m is a known mode.
func (m DisplayMode) Valid() bool {
	return m == ModeInline || m == ModeStacked
}

// SessionState is the lifecycle state of a loader session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// SessionSummary describes a finished session for logging.
type SessionSummary struct {
	ID       string
	Style    string
	Mode     DisplayMode
	Duration time.Duration
	Ticks    int
	Lines    int
	Failed   bool
	Err      error
}
