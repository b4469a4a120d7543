// internal/playback/scheduler.go
package playback

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/player"
)

// Verify scheduler implements Service at compile time.
var _ Service = (*scheduler)(nil)

const osdDuration = 10 * time.Second

type scheduler struct {
	mu sync.Mutex

	player player.Interface
	index  *cue.Index
	opts   Options
	log    *zap.SugaredLogger

	state   State
	active  int // -1 when no cue is active
	target  int
	repeats int

	// seenInside is set once a tick lands before the active cue's end. A
	// boundary only counts after that, so a stale position right after a
	// seek cannot trigger a second repeat.
	seenInside bool

	// preroll marks a repeat that resumed before the cue's start; ticks in
	// [prerollFrom, start) keep the cue active.
	preroll     bool
	prerollFrom time.Duration

	scrubbing  bool
	userPaused bool
	lastPos    time.Duration

	// Single pending action slot. gen is bumped on every cancel so a timer
	// that already fired cannot act on a newer transition.
	pending *time.Timer
	gen     uint64

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a scheduler that owns p and idx. A nil logger discards logs.
func New(p player.Interface, idx *cue.Index, opts Options, log *zap.SugaredLogger) Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if idx == nil {
		idx, _ = cue.NewIndex(nil)
	}
	defaults := DefaultOptions()
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = defaults.SettleDelay
	}
	opts.PreRoll = max(opts.PreRoll, 0)
	return &scheduler{
		player: p,
		index:  idx,
		opts:   opts,
		log:    log,
		state:  StateIdle,
		active: -1,
		target: max(opts.RepeatTarget, 1),
	}
}

// OnTick feeds the current playback position into the state machine.
func (s *scheduler) OnTick(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.lastPos = pos

	// Media not loaded yet: a normal startup transient.
	if _, ok := s.player.Duration(); !ok {
		return
	}
	if !s.state.Autonomous() {
		return
	}
	s.tickLocked(pos)
}

func (s *scheduler) tickLocked(pos time.Duration) {
	if s.state == StateHolding && s.active >= 0 {
		c := s.index.At(s.active)
		switch {
		case pos < c.End:
			s.seenInside = true
		case !s.seenInside:
			// Position still from before the last seek.
			return
		case s.repeats < s.target-1:
			s.repeatLocked()
			return
		}
	}

	i, ok := s.index.FindActive(pos)
	if !ok {
		i = -1
	}
	if i == s.active {
		if ok {
			s.preroll = false
		}
		return
	}
	if s.inPrerollLocked(pos) {
		return
	}
	s.log.Debugw("active cue changed", "from", s.active, "to", i, "position", pos)
	s.setActiveLocked(i, true)
	s.seenInside = ok
}

func (s *scheduler) inPrerollLocked(pos time.Duration) bool {
	if !s.preroll || s.active < 0 {
		return false
	}
	return pos >= s.prerollFrom && pos < s.index.At(s.active).Start
}

func (s *scheduler) repeatLocked() {
	s.repeats++
	target := prerollTarget(s.index, s.active, s.opts.PreRoll)
	s.log.Debugw("repeating cue",
		"index", s.active,
		"repeat", s.repeats,
		"target", s.target,
		"seek", target,
	)
	s.preroll = target < s.index.At(s.active).Start
	s.prerollFrom = target
	s.emitCueLocked(s.active)
	_ = s.seekAndSettleLocked(target)
}

// prerollTarget returns where a repeat of cue i starts: up to preroll before
// its start, never earlier than the previous cue's end or zero.
func prerollTarget(idx *cue.Index, i int, preroll time.Duration) time.Duration {
	start := idx.At(i).Start
	if preroll <= 0 {
		return start
	}
	target := start - preroll
	if i > 0 {
		target = max(target, idx.At(i-1).End)
	}
	return min(max(target, 0), start)
}

// seekAndSettleLocked pauses, seeks and schedules the single resume. On seek
// failure the scheduler reports a SeekFailure and falls back to Idle with
// playback running.
func (s *scheduler) seekAndSettleLocked(target time.Duration) error {
	s.cancelPendingLocked()
	s.seenInside = false

	if err := s.player.Pause(); err != nil {
		s.log.Debugw("pause before seek failed", "error", err)
	}
	if err := s.player.SeekTo(target); err != nil {
		return s.seekFailedLocked(target, err)
	}

	s.setStateLocked(StateSeeking)
	gen := s.gen
	s.pending = time.AfterFunc(s.opts.SettleDelay, func() {
		s.resumeAfterSettle(gen)
	})
	return nil
}

func (s *scheduler) resumeAfterSettle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.gen {
		return
	}
	s.pending = nil
	if s.state != StateSeeking || s.scrubbing || s.userPaused {
		return
	}
	if err := s.player.Play(); err != nil {
		s.playerErrorLocked(errmsg.OpResume, err)
	}
	s.setStateLocked(s.restingStateLocked())
}

func (s *scheduler) seekFailedLocked(target time.Duration, err error) error {
	failure := &SeekFailure{Target: target, Err: err}
	fatal := errors.Is(err, player.ErrClosed)
	s.log.Warnw("seek failed", "target", target, "error", err)
	s.preroll = false
	s.setActiveLocked(-1, false)
	s.setStateLocked(StateIdle)
	s.notifyLocked(Notice{
		Level: LevelError,
		Op:    errmsg.OpSeek,
		Err:   err,
		Fatal: fatal,
	})
	// Undo the pause taken for the seek.
	if !fatal && !s.userPaused && !s.scrubbing && s.player.IsPaused() {
		if err := s.player.Play(); err != nil {
			s.playerErrorLocked(errmsg.OpResume, err)
		}
	}
	return failure
}

func (s *scheduler) playerErrorLocked(op errmsg.Op, err error) {
	if errors.Is(err, player.ErrUnavailable) {
		s.log.Debugw("player not ready", "op", op)
		return
	}
	s.log.Warnw("player command failed", "op", op, "error", err)
	s.notifyLocked(Notice{
		Level: LevelError,
		Op:    op,
		Err:   err,
		Fatal: errors.Is(err, player.ErrClosed),
	})
}

// cancelPendingLocked empties the pending action slot.
func (s *scheduler) cancelPendingLocked() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// abortSeekLocked cancels a pending resume and, when the scheduler paused the
// player for it, resumes immediately so no operation strands playback.
func (s *scheduler) abortSeekLocked() {
	s.cancelPendingLocked()
	if s.state != StateSeeking {
		return
	}
	if !s.scrubbing && !s.userPaused {
		if err := s.player.Play(); err != nil {
			s.playerErrorLocked(errmsg.OpResume, err)
		}
	}
	s.setStateLocked(s.restingStateLocked())
}

func (s *scheduler) restingStateLocked() State {
	switch {
	case s.scrubbing || s.userPaused:
		return StateSuspended
	case s.active >= 0:
		return StateHolding
	default:
		return StateIdle
	}
}

// setActiveLocked changes the active cue and resets the repeat counter.
func (s *scheduler) setActiveLocked(i int, updateState bool) {
	prev := s.active
	s.active = i
	s.repeats = 0
	s.seenInside = false
	s.preroll = false
	if updateState {
		s.setStateLocked(s.restingStateLocked())
	}
	if prev != i {
		s.emitCueLocked(prev)
	}
}

func (s *scheduler) setStateLocked(st State) {
	if s.state == st {
		return
	}
	prev := s.state
	s.state = st
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Previous: prev, Current: st})
	}
}

func (s *scheduler) emitCueLocked(prev int) {
	e := CueChange{
		PreviousIndex: prev,
		Index:         s.active,
		RepeatsDone:   s.repeats,
		RepeatTarget:  s.target,
	}
	if s.active >= 0 {
		c := s.index.At(s.active)
		e.Cue = &c
	}
	s.mirrorLocked(e.Cue)

	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendCue(e)
	}
}

func (s *scheduler) mirrorLocked(c *cue.Cue) {
	if !s.opts.MirrorOSD {
		return
	}
	overlay, ok := s.player.(player.TextOverlay)
	if !ok {
		return
	}
	text := ""
	d := time.Duration(0)
	if c != nil {
		text = c.Text
		d = min(c.Duration()+s.opts.PreRoll, osdDuration)
	}
	if err := overlay.ShowText(text, d); err != nil {
		s.log.Debugw("osd update failed", "error", err)
	}
}

func (s *scheduler) notifyLocked(n Notice) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendNotice(n)
	}
}

// positionLocked returns the engine position, falling back to the last tick.
func (s *scheduler) positionLocked() time.Duration {
	if pos, ok := s.player.Position(); ok {
		return pos
	}
	return s.lastPos
}

// Subscribe creates a new event subscription.
func (s *scheduler) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Player returns the engine the scheduler drives.
func (s *scheduler) Player() player.Interface {
	return s.player
}

// Index returns the cue index in use.
func (s *scheduler) Index() *cue.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Status returns a rendering snapshot.
func (s *scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		State:        s.state,
		ActiveIndex:  s.active,
		RepeatsDone:  s.repeats,
		RepeatTarget: s.target,
		Position:     s.positionLocked(),
		Paused:       s.userPaused,
		Scrubbing:    s.scrubbing,
		Shift:        s.index.Offset(),
		CueCount:     s.index.Len(),
	}
	st.Duration, st.Ready = s.player.Duration()
	if s.active >= 0 {
		c := s.index.At(s.active)
		st.Active = &c
	}
	return st
}

// Close cancels pending work and signals subscribers. It does not close the
// player.
func (s *scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.cancelPendingLocked()
	s.closed = true
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}
