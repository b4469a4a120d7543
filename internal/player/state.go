package player

// State is the coarse engine state derived from an Interface.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if media is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// StateOf derives the state of p. Media without a known duration counts as
// Stopped.
func StateOf(p Interface) State {
	if _, ok := p.Duration(); !ok {
		return Stopped
	}
	if p.IsPaused() {
		return Paused
	}
	return Playing
}
