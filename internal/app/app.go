// internal/app/app.go
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/keymap"
	"github.com/llehouerou/subrepeat/internal/notify"
	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/ui/cuepanel"
)

// noticeTTL is how long a notice stays on the status line.
const noticeTTL = 5 * time.Second

// Options configures the TUI shell.
type Options struct {
	Media       string // video path, shown in the header
	Subtitle    string // subtitle path, reloaded with r
	Backend     string
	MergeSymbol string
	SeekStep    time.Duration
	VolumeStep  int
	Notifier    notify.Notifier
	Log         *zap.SugaredLogger

	// Bindings replaces keymap.Bindings when set.
	Bindings []keymap.Binding

	// Notices are shown once the UI starts, e.g. settings that fell back to
	// their defaults.
	Notices []playback.Notice
}

// Model is the root application model. It owns no playback state: the
// scheduler is the single source of truth and is read on every tick.
type Model struct {
	svc  playback.Service
	sub  *playback.Subscription
	opts Options

	keys     *keymap.Resolver
	help     help.Model
	helpMap  keymap.HelpMap
	fullHelp bool

	panel  cuepanel.Model
	status playback.Status

	notice   *playback.Notice
	noticeAt time.Time
	prompt   *prompt

	width, height int

	// Err is set when the session ended because the player went away.
	Err error
}

// New creates the application model around a running scheduler.
func New(svc playback.Service, opts Options) Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Disabled()
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = 5 * time.Second
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = 5
	}
	if opts.Bindings == nil {
		opts.Bindings = keymap.Bindings
	}

	m := Model{
		svc:     svc,
		sub:     svc.Subscribe(),
		opts:    opts,
		keys:    keymap.NewResolver(opts.Bindings),
		help:    help.New(),
		helpMap: keymap.DefaultHelp(opts.Bindings),
		panel:   cuepanel.New(),
	}
	m.refresh()
	for _, n := range opts.Notices {
		m.showNotice(n)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		m.WatchServiceEvents(),
		m.WatchPlayerExit(),
	)
}

// refresh copies the scheduler snapshot into the view models.
func (m *Model) refresh() {
	m.status = m.svc.Status()
	m.panel.SetStatus(m.status, m.svc.Index())
}

// Status returns the last snapshot rendered.
func (m Model) Status() playback.Status {
	return m.status
}
