package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/config"
	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/logging"
	"github.com/llehouerou/subrepeat/internal/notify"
	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/player"
	"github.com/llehouerou/subrepeat/internal/player/mpv"
	"github.com/llehouerou/subrepeat/internal/player/vlc"
	"github.com/llehouerou/subrepeat/internal/subtitle"
)

// session is one video played with one subtitle file.
type session struct {
	svc      playback.Service
	video    string
	subtitle string
	settings *settings
	notifier notify.Notifier
	log      *zap.SugaredLogger
	watch    bool
}

func runSession(cmd *cobra.Command, c *commandContext, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := c.resolve(cmd)
	if err != nil {
		return err
	}

	tui := !c.noTUI && isTerminal(os.Stdin) && isTerminal(os.Stdout)
	log, err := c.logger(tui)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	for _, w := range s.warnings {
		log.Warnw("setting ignored", "reason", w.Message())
	}

	video, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve video path: %w", err)
	}
	if _, err := os.Stat(video); err != nil {
		return errmsg.Wrap(errmsg.OpLoadVideo, args[0], err)
	}

	explicit := ""
	if len(args) > 1 {
		explicit = args[1]
	}
	subPath, err := resolveSubtitle(ctx, video, explicit, log)
	if err != nil {
		return err
	}

	idx, err := subtitle.LoadIndex(subPath, subtitle.IndexOptions{
		MergeSymbol: s.cfg.MergeSymbol,
		Shift:       s.shift,
		Log:         log,
	})
	if err != nil {
		return errmsg.Wrap(errmsg.OpLoadSubtitle, filepath.Base(subPath), err)
	}

	// While the TUI owns the terminal, the player's diagnostics go to the log.
	var playerStderr io.Writer
	if tui {
		defer captureStderr(log)()
		playerStderr = os.Stderr
	}

	p, err := startPlayer(ctx, s.cfg, playerStderr, log)
	if err != nil {
		return errmsg.Wrap(errmsg.OpStartPlayer, s.cfg.Backend, err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Debugw("player close failed", "error", err)
		}
	}()
	if err := p.Load(video); err != nil {
		return errmsg.Wrap(errmsg.OpLoadVideo, filepath.Base(video), err)
	}

	timing := s.cfg.GetTiming()
	svc := playback.New(p, idx, playback.Options{
		RepeatTarget: s.repeat,
		SettleDelay:  timing.SettleDelay(),
		PreRoll:      timing.Preroll(),
		MirrorOSD:    s.cfg.OSDEnabled(),
	}, log.Named("scheduler"))
	defer func() { _ = svc.Close() }()

	poller := playback.NewPoller(svc, p, timing.PollInterval())
	go func() {
		if err := poller.Run(ctx); errors.Is(err, player.ErrClosed) {
			log.Infow("player exited")
		}
	}()

	keys := startMediaKeys(svc, video, s.cfg.MPRISEnabled(), log)
	defer keys.Close()

	sess := &session{
		svc:      svc,
		video:    video,
		subtitle: subPath,
		settings: s,
		notifier: newNotifier(s.cfg.Notifications, log),
		log:      log,
		watch:    !c.noWatch,
	}
	log.Infow("session started",
		"video", video,
		"subtitle", subPath,
		"backend", s.cfg.Backend,
		"repeat", s.repeat,
		"shift", s.shift,
	)

	if tui {
		return sess.runTUI(ctx)
	}
	return sess.runHeadless(ctx, cmd.OutOrStdout())
}

// logger writes to the log file while the TUI owns the terminal and to
// stderr otherwise. --log-file wins in both cases.
func (c *commandContext) logger(tui bool) (*zap.SugaredLogger, error) {
	file := c.logFile
	if file == "" && tui {
		var err error
		if file, err = logging.DefaultFile(); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	return logging.New(logging.Options{Verbose: c.verbose, File: file})
}

func startPlayer(ctx context.Context, cfg *config.Config, stderr io.Writer, log *zap.SugaredLogger) (player.Interface, error) {
	switch cfg.Backend {
	case config.BackendVLC:
		p, err := vlc.Start(ctx, vlc.Options{
			Path:   cfg.VLC.Path,
			Port:   cfg.VLC.Port,
			Stderr: stderr,
			Log:    log.Named("vlc"),
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		p, err := mpv.Start(ctx, mpv.Options{
			Path:   cfg.MPV.Path,
			Args:   cfg.MPV.Args,
			Stderr: stderr,
			Log:    log.Named("mpv"),
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func newNotifier(enabled bool, log *zap.SugaredLogger) notify.Notifier {
	if !enabled {
		return notify.Disabled()
	}
	n, err := notify.New()
	if err != nil {
		log.Infow("desktop notifications unavailable", "error", err)
		return notify.Disabled()
	}
	return n
}

// watchSubtitle calls onChange with the subtitle path each time the file is
// rewritten, until ctx is done.
func (s *session) watchSubtitle(ctx context.Context, onChange func(path string)) {
	if !s.watch {
		return
	}
	w := subtitle.NewWatcher(s.subtitle, 0, s.log.Named("watcher"), onChange)
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warnw("subtitle watcher stopped", "error", err)
		}
	}()
}

// reload reads the subtitle file again, keeping the current delay.
func (s *session) reload(path string) {
	idx, err := subtitle.LoadIndex(path, subtitle.IndexOptions{
		MergeSymbol: s.settings.cfg.MergeSymbol,
		Shift:       s.svc.Status().Shift,
		Log:         s.log,
	})
	if err != nil {
		s.report(playback.Notice{Level: playback.LevelError, Op: errmsg.OpReload, Err: err})
		return
	}
	s.svc.ReloadCues(idx)
}

// report logs n and forwards warnings to the desktop.
func (s *session) report(n playback.Notice) {
	switch n.Level {
	case playback.LevelInfo:
		s.log.Infow(n.Message())
		return
	case playback.LevelWarning:
		s.log.Warnw(n.Message())
	default:
		s.log.Errorw(n.Message(), "fatal", n.Fatal)
	}
	if _, err := s.notifier.Notify(notify.Warning(n.Message(), n.Fatal)); err != nil {
		s.log.Debugw("desktop notification failed", "error", err)
	}
}
