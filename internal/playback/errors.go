package playback

import (
	"fmt"
	"time"
)

// SeekFailure wraps an engine error returned while seeking. The scheduler
// reports it and returns to Idle instead of retrying.
type SeekFailure struct {
	Target time.Duration
	Err    error
}

func (e *SeekFailure) Error() string {
	return fmt.Sprintf("seek to %v: %v", e.Target, e.Err)
}

func (e *SeekFailure) Unwrap() error {
	return e.Err
}
