// internal/app/update.go
package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/keymap"
	"github.com/llehouerou/subrepeat/internal/notify"
	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/player"
)

const (
	shortDelayStep = 100 * time.Millisecond
	longDelayStep  = time.Second
)

// ErrPlayerExited ends the session when the player window is closed.
var ErrPlayerExited = errors.New("player exited")

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.refresh()
		if m.notice != nil && time.Since(m.noticeAt) > noticeTTL {
			m.notice = nil
		}
		return m, TickCmd()

	case tea.KeyMsg:
		if m.prompt != nil {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case NoticeMsg:
		n := playback.Notice(msg)
		m.showNotice(n)
		if n.Fatal {
			m.Err = n.Err
			return m, tea.Quit
		}
		return m, m.WatchServiceEvents()

	case CueChangedMsg, StateChangedMsg:
		m.refresh()
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit

	case PlayerExitedMsg:
		m.Err = ErrPlayerExited
		return m, tea.Quit

	case SubtitleChangedMsg:
		if msg.Path != m.opts.Subtitle {
			return m, nil
		}
		return m, m.reloadCmd()

	case ReloadedMsg:
		return m.handleReloaded(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	cmd := m.dispatch(action)
	m.refresh()
	return m, cmd
}

// dispatch runs a key action. Scheduler failures come back as notices on
// the subscription, so their returned errors are only logged here.
func (m *Model) dispatch(action keymap.Action) tea.Cmd {
	var err error
	st := m.status

	switch action {
	case keymap.ActionQuit:
		return tea.Quit
	case keymap.ActionHelp:
		m.fullHelp = !m.fullHelp
		m.help.ShowAll = m.fullHelp

	case keymap.ActionPlayPause:
		err = m.svc.TogglePause()
	case keymap.ActionNextCue:
		err = m.svc.SkipNext()
	case keymap.ActionPrevCue:
		err = m.svc.SkipPrevious()
	case keymap.ActionSeekForward:
		err = m.scrub(m.opts.SeekStep)
	case keymap.ActionSeekBack:
		err = m.scrub(-m.opts.SeekStep)

	case keymap.ActionVolumeUp:
		m.changeVolume(m.opts.VolumeStep)
	case keymap.ActionVolumeDown:
		m.changeVolume(-m.opts.VolumeStep)
	case keymap.ActionFullscreen:
		p := m.svc.Player()
		if ferr := p.SetFullscreen(!p.Fullscreen()); ferr != nil {
			m.playerFailed(errmsg.OpFullscreen, ferr)
		}

	case keymap.ActionRepeatMore:
		m.svc.SetRepeatTarget(st.RepeatTarget + 1)
	case keymap.ActionRepeatLess:
		m.svc.SetRepeatTarget(st.RepeatTarget - 1)

	case keymap.ActionDelayEarlier:
		m.svc.SetTimeShift(st.Shift - shortDelayStep)
	case keymap.ActionDelayLater:
		m.svc.SetTimeShift(st.Shift + shortDelayStep)
	case keymap.ActionDelayEarlierLong:
		m.svc.SetTimeShift(st.Shift - longDelayStep)
	case keymap.ActionDelayLaterLong:
		m.svc.SetTimeShift(st.Shift + longDelayStep)

	case keymap.ActionSetRepeat:
		return m.openPrompt(promptRepeat)
	case keymap.ActionSetDelay:
		return m.openPrompt(promptDelay)

	case keymap.ActionReload:
		if m.opts.Subtitle == "" {
			m.showNotice(playback.Notice{
				Level: playback.LevelWarning,
				Text:  "No subtitle file to reload",
			})
			return nil
		}
		return m.reloadCmd()
	}

	if err != nil {
		m.opts.Log.Debugw("action failed", "action", action, "error", err)
	}
	return nil
}

// scrub is a user seek: the scheduler is suspended, the target clamped to
// the media, then the scheduler recomputes from there.
func (m *Model) scrub(delta time.Duration) error {
	target := max(m.status.Position+delta, 0)
	if m.status.Duration > 0 {
		target = min(target, m.status.Duration)
	}
	m.svc.Suspend()
	return m.svc.ResumeFromSeek(target)
}

func (m *Model) changeVolume(delta int) {
	p := m.svc.Player()
	if err := p.SetVolume(player.ClampVolume(p.Volume() + delta)); err != nil {
		m.playerFailed(errmsg.OpVolume, err)
	}
}

func (m *Model) playerFailed(op errmsg.Op, err error) {
	if errors.Is(err, player.ErrUnavailable) {
		return
	}
	m.showNotice(playback.Notice{Level: playback.LevelError, Op: op, Err: err})
}

func (m Model) handleReloaded(msg ReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.opts.Log.Warnw("subtitle reload failed", "file", msg.Path, "error", msg.Err)
		m.showNotice(playback.Notice{
			Level: playback.LevelError,
			Op:    errmsg.OpReload,
			Err:   msg.Err,
		})
		return m, nil
	}
	m.svc.ReloadCues(msg.Index)
	m.refresh()
	m.showNotice(playback.Notice{
		Level: playback.LevelInfo,
		Op:    errmsg.OpReload,
		Text:  fmt.Sprintf("Reloaded %d cues", msg.Index.Len()),
	})
	return m, nil
}

// showNotice puts n on the status line. Warnings and errors also go to the
// desktop when notifications are enabled.
func (m *Model) showNotice(n playback.Notice) {
	m.notice = &n
	m.noticeAt = time.Now()
	if n.Level < playback.LevelWarning {
		return
	}
	if _, err := m.opts.Notifier.Notify(notify.Warning(n.Message(), n.Fatal)); err != nil {
		m.opts.Log.Debugw("desktop notification failed", "error", err)
	}
}
