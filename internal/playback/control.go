package playback

import (
	"time"

	"github.com/llehouerou/subrepeat/internal/config"
	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/errmsg"
)

// endGuard keeps relative seeks from landing exactly on the end of media,
// where engines stop instead of pausing.
const endGuard = 100 * time.Millisecond

// Suspend starts a user scrub. No autonomous action happens until
// ResumeFromSeek.
func (s *scheduler) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.scrubbing = true
	s.setStateLocked(StateSuspended)
}

// ResumeFromSeek ends a scrub at pos and recomputes the active cue from
// scratch.
func (s *scheduler) ResumeFromSeek(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.scrubbing = false
	return s.jumpLocked(max(pos, 0))
}

// SeekRelative is a scrub of delta from the current position, clamped to the
// media.
func (s *scheduler) SeekRelative(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	target := max(s.positionLocked()+delta, 0)
	if dur, ok := s.player.Duration(); ok && dur > endGuard {
		target = min(target, dur-endGuard)
	}
	return s.jumpLocked(target)
}

// jumpLocked seeks to pos and makes the cue under pos active with a fresh
// repeat counter, as if playback had just arrived there.
func (s *scheduler) jumpLocked(pos time.Duration) error {
	if err := s.player.SeekTo(pos); err != nil {
		return s.seekFailedLocked(pos, err)
	}
	s.lastPos = pos

	i, ok := s.index.FindActive(pos)
	if !ok {
		i = -1
	}
	prev := s.active
	s.setActiveLocked(i, true)
	s.seenInside = ok
	if prev == i {
		// Same cue, but the counter was reset: tell listeners anyway.
		s.emitCueLocked(prev)
	}

	if !s.userPaused && s.player.IsPaused() {
		if err := s.player.Play(); err != nil {
			s.playerErrorLocked(errmsg.OpResume, err)
		}
	}
	return nil
}

// SkipNext moves to the cue after the active one (or after the current
// position when idle) and plays it from its start.
func (s *scheduler) SkipNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	n := s.index.Len()
	if n == 0 {
		return nil
	}

	next := s.active + 1
	if s.active < 0 {
		pos := s.positionLocked()
		next = s.index.FindNextIndex(pos)
		if s.index.At(next).Start <= pos {
			next = n
		}
	}
	if next >= n {
		s.abortSeekLocked()
		return nil
	}
	return s.skipToLocked(next)
}

// SkipPrevious moves to the cue before the active one (or the last cue that
// started before the current position when idle).
func (s *scheduler) SkipPrevious() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	if s.index.Len() == 0 {
		return nil
	}

	prev := s.active - 1
	if s.active < 0 {
		pos := s.positionLocked()
		prev = s.index.FindNextIndex(pos)
		if s.index.At(prev).Start > pos {
			prev--
		}
	}
	if prev < 0 {
		s.abortSeekLocked()
		return nil
	}
	return s.skipToLocked(prev)
}

func (s *scheduler) skipToLocked(i int) error {
	s.log.Debugw("skipping", "from", s.active, "to", i)
	// A skip always resumes, even from a user pause.
	s.userPaused = false
	s.setActiveLocked(i, false)
	return s.seekAndSettleLocked(s.index.At(i).Start)
}

// Pause pauses playback on behalf of the user.
func (s *scheduler) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.userPaused = true
	s.setStateLocked(StateSuspended)
	if err := s.player.Pause(); err != nil {
		s.playerErrorLocked(errmsg.OpPause, err)
		return err
	}
	return nil
}

// Play resumes playback after a user pause, keeping the repeat counter when
// the position is still inside the same cue.
func (s *scheduler) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.userPaused = false

	pos := s.positionLocked()
	i, ok := s.index.FindActive(pos)
	if !ok {
		i = -1
	}
	if i != s.active && !s.inPrerollLocked(pos) {
		s.setActiveLocked(i, false)
	}
	s.seenInside = ok
	s.setStateLocked(s.restingStateLocked())

	if err := s.player.Play(); err != nil {
		s.playerErrorLocked(errmsg.OpResume, err)
		return err
	}
	return nil
}

// TogglePause switches between Play and Pause.
func (s *scheduler) TogglePause() error {
	s.mu.Lock()
	paused := s.userPaused || (s.state != StateSeeking && s.player.IsPaused())
	s.mu.Unlock()

	if paused {
		return s.Play()
	}
	return s.Pause()
}

// SetRepeatTarget sets how many times each cue is shown. Values below one
// mean one.
func (s *scheduler) SetRepeatTarget(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abortSeekLocked()
	s.target = max(n, 1)
	if s.repeats >= s.target {
		s.repeats = s.target - 1
	}
	if s.active >= 0 {
		s.emitCueLocked(s.active)
	}
}

// SetRepeatTargetText applies a typed repeat count. Unparseable input sets
// the target to config.DefaultRepeat, publishes a warning and returns the
// *config.InvalidConfigurationError.
func (s *scheduler) SetRepeatTargetText(text string) error {
	n, err := config.ParseRepeat(text)
	s.SetRepeatTarget(n)
	if err != nil {
		s.warn(errmsg.OpParseRepeat, err)
	}
	return err
}

// SetTimeShiftText applies a typed delay in seconds. Unparseable input
// resets the shift to zero.
func (s *scheduler) SetTimeShiftText(text string) error {
	d, err := config.ParseDelay(text)
	s.SetTimeShift(d)
	if err != nil {
		s.warn(errmsg.OpParseDelay, err)
	}
	return err
}

func (s *scheduler) warn(op errmsg.Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.notifyLocked(Notice{Level: LevelWarning, Op: op, Err: err})
}

// SetTimeShift moves every cue by delta relative to the loaded subtitles.
// The repeat counter survives when the same cue stays active.
func (s *scheduler) SetTimeShift(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abortSeekLocked()
	s.index = s.index.Shifted(delta - s.index.Offset())
	s.preroll = false

	pos := s.positionLocked()
	i, ok := s.index.FindActive(pos)
	if !ok {
		i = -1
	}
	if i != s.active {
		s.setActiveLocked(i, true)
	} else if s.active >= 0 {
		s.emitCueLocked(s.active)
	}
	s.seenInside = ok
}

// ReloadCues replaces the index wholesale and recomputes from the current
// position with a fresh repeat counter.
func (s *scheduler) ReloadCues(idx *cue.Index) {
	if idx == nil {
		idx, _ = cue.NewIndex(nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.abortSeekLocked()
	s.index = idx

	pos := s.positionLocked()
	i, ok := s.index.FindActive(pos)
	if !ok {
		i = -1
	}
	prev := s.active
	s.setActiveLocked(i, true)
	s.seenInside = ok
	if prev == i {
		s.emitCueLocked(prev)
	}
	s.log.Infow("cues reloaded", "count", idx.Len(), "shift", idx.Offset())
}
