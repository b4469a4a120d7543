package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/llehouerou/subrepeat/internal/playback"
)

// runHeadless prints each cue as it plays until the player exits or ctx is
// done. Control happens through the player window and media keys.
func (s *session) runHeadless(ctx context.Context, out io.Writer) error {
	sub := s.svc.Subscribe()
	for _, n := range s.settings.warnings {
		s.report(n)
	}
	s.watchSubtitle(ctx, s.reload)

	for {
		select {
		case e := <-sub.CueChanged:
			if line := formatCueLine(e); line != "" {
				fmt.Fprintln(out, line)
			}
		case n := <-sub.Notice:
			s.report(n)
			if n.Fatal {
				return nil
			}
		case <-sub.StateChanged:
		case <-sub.Done:
			return nil
		case <-s.svc.Player().Done():
			s.log.Infow("session ended", "reason", "player exited")
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// formatCueLine renders a cue change as "[0:01:02.500] 2/3  text". A change
// to no cue renders as "".
func formatCueLine(e playback.CueChange) string {
	if e.Cue == nil {
		return ""
	}
	return fmt.Sprintf("[%s] %d/%d  %s",
		formatTimestamp(e.Cue.Start), e.RepeatsDone+1, e.RepeatTarget, oneLine(e.Cue.Text))
}

func formatTimestamp(d time.Duration) string {
	d = max(d, 0)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, sec, ms)
}
