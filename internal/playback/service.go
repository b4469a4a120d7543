package playback

import (
	"time"

	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/player"
)

// Service is the repeat scheduler as seen by UI shells, media keys and the
// poller. Every operation cancels a pending resume before acting.
type Service interface {
	// Driving
	OnTick(pos time.Duration)

	// User interaction
	Suspend()
	ResumeFromSeek(pos time.Duration) error
	SeekRelative(delta time.Duration) error
	SkipNext() error
	SkipPrevious() error
	Play() error
	Pause() error
	TogglePause() error

	// Configuration
	SetRepeatTarget(n int)
	SetTimeShift(delta time.Duration)
	// Text variants parse user input; invalid input falls back to the
	// defaults (one repeat, no shift) and publishes a warning notice.
	SetRepeatTargetText(text string) error
	SetTimeShiftText(text string) error
	ReloadCues(idx *cue.Index)

	// State queries
	Status() Status
	Index() *cue.Index
	Player() player.Interface // Direct player access (volume, fullscreen)

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Status is a rendering snapshot.
type Status struct {
	State        State
	ActiveIndex  int      // -1 when no cue is active
	Active       *cue.Cue // nil when no cue is active
	RepeatsDone  int
	RepeatTarget int
	Position     time.Duration
	Duration     time.Duration
	Ready        bool
	Paused       bool // paused by the user
	Scrubbing    bool
	Shift        time.Duration
	CueCount     int
}

// Options tunes the scheduler.
type Options struct {
	RepeatTarget int
	// SettleDelay is the pause after a seek before playback resumes.
	SettleDelay time.Duration
	// PreRoll starts a repeat up to this much before the cue, never inside
	// the previous cue. Zero disables it.
	PreRoll time.Duration
	// MirrorOSD draws the active cue with the engine's text overlay, when
	// the engine has one.
	MirrorOSD bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		RepeatTarget: 1,
		SettleDelay:  250 * time.Millisecond,
		PreRoll:      500 * time.Millisecond,
	}
}
