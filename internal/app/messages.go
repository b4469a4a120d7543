// Package app contains the Bubble Tea shell around the repeat scheduler.
package app

import (
	"time"

	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/playback"
)

// TickMsg is sent periodically to redraw from the scheduler snapshot.
type TickMsg time.Time

// NoticeMsg carries a notice from the scheduler subscription.
type NoticeMsg playback.Notice

// CueChangedMsg is sent when the active cue or its repeat count changes.
type CueChangedMsg playback.CueChange

// StateChangedMsg is sent when the scheduler state changes.
type StateChangedMsg playback.StateChange

// ServiceClosedMsg is sent when the scheduler subscription closes.
type ServiceClosedMsg struct{}

// PlayerExitedMsg is sent when the player process goes away, e.g. the user
// closed its window.
type PlayerExitedMsg struct{}

// SubtitleChangedMsg asks for a reload after the subtitle file changed on
// disk.
type SubtitleChangedMsg struct {
	Path string
}

// ReloadedMsg is the result of reading the subtitle file again.
type ReloadedMsg struct {
	Path  string
	Index *cue.Index
	Err   error
}
