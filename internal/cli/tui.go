package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/app"
	"github.com/llehouerou/subrepeat/internal/player"
	"github.com/llehouerou/subrepeat/internal/stderr"
)

// captureStderr sends everything written to fd 2, by this process or by
// children spawned with os.Stderr, to the log until the returned func runs.
func captureStderr(log *zap.SugaredLogger) func() {
	if err := stderr.Start(); err != nil {
		log.Debugw("stderr capture unavailable", "error", err)
		return func() {}
	}
	out := log.Named("stderr")
	done := make(chan struct{})
	go func() {
		defer close(done)
		for l := range stderr.Messages {
			out.Warnw(l.Text, "module", l.Module)
		}
	}()
	return func() {
		stderr.Stop()
		<-done
	}
}

func (s *session) runTUI(ctx context.Context) error {
	timing := s.settings.cfg.GetTiming()
	model := app.New(s.svc, app.Options{
		Media:       s.video,
		Subtitle:    s.subtitle,
		Backend:     s.settings.cfg.Backend,
		MergeSymbol: s.settings.cfg.MergeSymbol,
		SeekStep:    timing.SeekStep(),
		VolumeStep:  timing.VolumeStep,
		Notifier:    s.notifier,
		Log:         s.log.Named("ui"),
		Bindings:    s.settings.bindings,
		Notices:     s.settings.warnings,
	})

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	s.watchSubtitle(ctx, func(path string) {
		prog.Send(app.SubtitleChangedMsg{Path: path})
	})

	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	m, ok := final.(app.Model)
	if !ok || m.Err == nil {
		return nil
	}
	if errors.Is(m.Err, app.ErrPlayerExited) || errors.Is(m.Err, player.ErrClosed) {
		s.log.Infow("session ended", "reason", m.Err)
		return nil
	}
	return m.Err
}
