// internal/playback/state.go
package playback

// State is the scheduler's relationship to the current playback time.
//
//	          cue active               boundary, repeats left
//	┌──────┐ ───────────▶ ┌─────────┐ ──────────────────────▶ ┌─────────┐
//	│ Idle │              │ Holding │                         │ Seeking │
//	└──────┘ ◀─────────── └─────────┘ ◀────────────────────── └─────────┘
//	          no cue                    settle delay elapsed
//
// Suspended is entered from any state by a scrub or a user pause and left by
// ResumeFromSeek or Play, which recompute Idle/Holding from the new time.
type State int

const (
	StateIdle State = iota
	StateHolding
	StateSeeking
	StateSuspended
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateHolding:
		return "Holding"
	case StateSeeking:
		return "Seeking"
	case StateSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// Autonomous reports whether the scheduler may act on ticks in this state.
func (s State) Autonomous() bool {
	return s == StateIdle || s == StateHolding
}
