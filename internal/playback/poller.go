package playback

import (
	"context"
	"time"

	"github.com/llehouerou/subrepeat/internal/player"
)

// DefaultPollInterval matches the position update rate of the engines.
const DefaultPollInterval = 50 * time.Millisecond

// Poller drives a Service from the engine position. It is the only source of
// ticks, so the scheduler never sees two drivers.
type Poller struct {
	svc      Service
	player   player.Interface
	interval time.Duration
}

// NewPoller creates a poller. A non-positive interval uses
// DefaultPollInterval.
func NewPoller(svc Service, p player.Interface, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{svc: svc, player: p, interval: interval}
}

// Run ticks until ctx is cancelled or the player goes away. It returns
// ctx.Err() or player.ErrClosed.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if pos, ok := p.player.Position(); ok {
				p.svc.OnTick(pos)
			}
		case <-p.player.Done():
			return player.ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
