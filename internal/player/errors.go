package player

import "errors"

var (
	// ErrUnavailable means the engine cannot serve the request yet, typically
	// because no media is loaded. Callers treat it as a transient.
	ErrUnavailable = errors.New("player unavailable")

	// ErrClosed means the engine went away. It is fatal for the session.
	ErrClosed = errors.New("player closed")
)

// ClampVolume bounds a volume percentage to 0..100.
func ClampVolume(percent int) int {
	return min(max(percent, 0), 100)
}
