package playback

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/subrepeat/internal/player"
)

func TestPoller_DrivesTicks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := player.NewMock()
		p.SetDuration(time.Minute)
		s := New(p, twoCues(t), DefaultOptions(), nil)
		defer s.Close()

		ctx, cancel := context.WithCancel(t.Context())
		errCh := make(chan error, 1)
		go func() { errCh <- NewPoller(s, p, 0).Run(ctx) }()

		p.SetPosition(1500 * time.Millisecond)
		time.Sleep(DefaultPollInterval)
		synctest.Wait()

		if got := s.Status().ActiveIndex; got != 1 {
			t.Errorf("ActiveIndex = %d, want 1", got)
		}

		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	})
}

func TestPoller_SkipsUnknownPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := player.NewMock()
		s := New(p, twoCues(t), DefaultOptions(), nil)
		defer s.Close()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go func() { _ = NewPoller(s, p, 10*time.Millisecond).Run(ctx) }()

		p.SetPosition(500 * time.Millisecond)
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		if got := s.Status().ActiveIndex; got != -1 {
			t.Errorf("ActiveIndex = %d, want -1", got)
		}
	})
}

func TestPoller_StopsWhenPlayerCloses(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := player.NewMock()
		s := New(p, nil, DefaultOptions(), nil)
		defer s.Close()

		errCh := make(chan error, 1)
		go func() { errCh <- NewPoller(s, p, 0).Run(t.Context()) }()

		_ = p.Close()
		if err := <-errCh; !errors.Is(err, player.ErrClosed) {
			t.Errorf("Run() = %v, want player.ErrClosed", err)
		}
	})
}
