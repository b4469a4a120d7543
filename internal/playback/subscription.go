package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged <-chan StateChange
	CueChanged   <-chan CueChange
	Notice       <-chan Notice
	Done         <-chan struct{}

	// Internal write channels
	stateCh  chan StateChange
	cueCh    chan CueChange
	noticeCh chan Notice
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:  make(chan StateChange, eventBufferSize),
		cueCh:    make(chan CueChange, eventBufferSize),
		noticeCh: make(chan Notice, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.CueChanged = s.cueCh
	s.Notice = s.noticeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendCue sends a cue change event (non-blocking).
func (s *Subscription) sendCue(e CueChange) {
	select {
	case s.cueCh <- e:
	default:
	}
}

// sendNotice sends a notice (non-blocking).
func (s *Subscription) sendNotice(e Notice) {
	select {
	case s.noticeCh <- e:
	default:
	}
}
