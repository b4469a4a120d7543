// Package cue holds parsed subtitle cues and the sorted index used to match
// playback time against them.
package cue

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmpty is returned when a subtitle source yields no usable cues.
var ErrEmpty = errors.New("no subtitle cues")

// Cue is a single subtitle entry.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Valid reports whether the cue spans a positive interval.
func (c Cue) Valid() bool {
	return c.End > c.Start
}

// Contains reports whether t falls inside [Start, End).
func (c Cue) Contains(t time.Duration) bool {
	return c.Start <= t && t < c.End
}

// Duration returns End - Start.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// MalformedCueError reports a cue dropped while building an Index.
type MalformedCueError struct {
	Position int // position in the input slice
	Cue      Cue
}

func (e *MalformedCueError) Error() string {
	return fmt.Sprintf("malformed cue #%d: end %v is not after start %v",
		e.Position+1, e.Cue.End, e.Cue.Start)
}
