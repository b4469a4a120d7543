package playback

import (
	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/errmsg"
)

// StateChange is emitted when the scheduler state changes.
type StateChange struct {
	Previous State
	Current  State
}

// CueChange is emitted when the active cue changes or a repeat starts.
//
// Emitted by:
//   - ticks entering, leaving or advancing past a cue
//   - boundary crossings that start a repeat (Index unchanged, RepeatsDone grows)
//   - SkipNext/SkipPrevious, ResumeFromSeek, SetTimeShift and ReloadCues
type CueChange struct {
	PreviousIndex int
	Index         int      // -1 when no cue is active
	Cue           *cue.Cue // nil when no cue is active
	RepeatsDone   int
	RepeatTarget  int
}

// Level grades a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Notice is a user-facing report: failed seeks, invalid input, reloads.
type Notice struct {
	Level Level
	Op    errmsg.Op
	Err   error
	// Text is shown instead of a formatted error when Err is nil.
	Text string
	// Fatal means the player is gone and the session should end.
	Fatal bool
}

// Message formats the notice for display.
func (n Notice) Message() string {
	if n.Err == nil {
		return n.Text
	}
	return errmsg.Format(n.Op, n.Err)
}
