package mpv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/player"
)

// Verify Player implements the player interfaces at compile time.
var (
	_ player.Interface   = (*Player)(nil)
	_ player.TextOverlay = (*Player)(nil)
)

const (
	startTimeout = 10 * time.Second
	quitTimeout  = 2 * time.Second
)

// Options configures the spawned mpv.
type Options struct {
	Path string   // executable, default "mpv"
	Args []string // extra command-line arguments
	// Stderr receives mpv's warnings and errors. Nil discards them.
	Stderr io.Writer
	Log    *zap.SugaredLogger
}

// Player is an mpv process controlled through its IPC socket. Position,
// duration and flags are answered from observed properties without a round
// trip.
type Player struct {
	*client

	cmd    *exec.Cmd
	socket string
	exited chan struct{}
}

// Start launches mpv with an idle window and connects to it.
func Start(ctx context.Context, opts Options) (*Player, error) {
	path := opts.Path
	if path == "" {
		path = "mpv"
	}
	if _, err := exec.LookPath(path); err != nil {
		return nil, fmt.Errorf("mpv not found: %w", err)
	}

	socket := filepath.Join(os.TempDir(), "subrepeat-"+uuid.NewString()+".sock")
	args := append([]string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--pause",
		"--input-ipc-server=" + socket,
		"--msg-level=all=warn",
	}, opts.Args...)

	cmd := exec.Command(path, args...)
	cmd.Stderr = opts.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	p, err := dialRetry(ctx, socket, exited, opts.Log)
	if err != nil {
		_ = cmd.Process.Kill()
		<-exited
		_ = os.Remove(socket)
		return nil, err
	}
	p.cmd = cmd
	p.socket = socket
	p.exited = exited
	go func() {
		// The window was closed or mpv crashed.
		<-exited
		p.shutdown()
	}()
	return p, nil
}

// dialRetry waits for mpv to create its socket.
func dialRetry(ctx context.Context, socket string, exited <-chan struct{}, log *zap.SugaredLogger) (*Player, error) {
	ctx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if _, err := os.Stat(socket); err == nil {
			return Dial(ctx, socket, log)
		}
		select {
		case <-ticker.C:
		case <-exited:
			return nil, errors.New("mpv exited during startup")
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for mpv socket: %w", ctx.Err())
		}
	}
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

func duration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Load replaces the current file.
func (p *Player) Load(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	p.mu.Lock()
	p.st.timePos = nil
	p.st.duration = nil
	p.mu.Unlock()
	_, err = p.command("loadfile", abs, "replace")
	return err
}

func (p *Player) setPause(paused bool) error {
	if err := p.transport("set_property", "pause", paused); err != nil {
		return err
	}
	p.mu.Lock()
	p.st.paused = paused
	p.mu.Unlock()
	return nil
}

func (p *Player) Play() error  { return p.setPause(false) }
func (p *Player) Pause() error { return p.setPause(true) }

func (p *Player) IsPaused() bool {
	return p.snapshot().paused
}

func (p *Player) Position() (time.Duration, bool) {
	st := p.snapshot()
	if st.timePos == nil || st.duration == nil {
		return 0, false
	}
	return duration(max(*st.timePos, 0)), true
}

func (p *Player) Duration() (time.Duration, bool) {
	st := p.snapshot()
	if st.duration == nil || *st.duration <= 0 {
		return 0, false
	}
	return duration(*st.duration), true
}

// SeekTo seeks exactly to pos. The cached position is updated right away so
// a poll racing the next property-change does not see the old time.
func (p *Player) SeekTo(pos time.Duration) error {
	if _, ok := p.Duration(); !ok {
		return player.ErrUnavailable
	}
	if err := p.transport("seek", seconds(pos), "absolute+exact"); err != nil {
		return err
	}
	p.mu.Lock()
	v := seconds(pos)
	p.st.timePos = &v
	p.mu.Unlock()
	return nil
}

func (p *Player) SetVolume(percent int) error {
	percent = player.ClampVolume(percent)
	if _, err := p.command("set_property", "volume", percent); err != nil {
		return err
	}
	p.mu.Lock()
	p.st.volume = float64(percent)
	p.mu.Unlock()
	return nil
}

func (p *Player) Volume() int {
	return player.ClampVolume(int(p.snapshot().volume + 0.5))
}

func (p *Player) SetFullscreen(on bool) error {
	if _, err := p.command("set_property", "fullscreen", on); err != nil {
		return err
	}
	p.mu.Lock()
	p.st.fullscreen = on
	p.mu.Unlock()
	return nil
}

func (p *Player) Fullscreen() bool {
	return p.snapshot().fullscreen
}

// ShowText draws text on the OSD for d. Empty text clears it.
func (p *Player) ShowText(text string, d time.Duration) error {
	if text == "" {
		d = time.Millisecond
	}
	_, err := p.command("show-text", text, d.Milliseconds())
	return err
}

func (p *Player) Done() <-chan struct{} {
	return p.done
}

// Close asks mpv to quit and kills it if it does not.
func (p *Player) Close() error {
	select {
	case <-p.done:
	default:
		_, _ = p.command("quit")
	}
	p.shutdown()

	if p.cmd == nil {
		return nil
	}
	select {
	case <-p.exited:
	case <-time.After(quitTimeout):
		_ = p.cmd.Process.Kill()
		<-p.exited
	}
	_ = os.Remove(p.socket)
	return nil
}
