package vlc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/player"
)

// Verify Player implements player.Interface at compile time.
var _ player.Interface = (*Player)(nil)

const startTimeout = 10 * time.Second

// Options configures the spawned VLC.
type Options struct {
	Path string // executable, default "vlc"
	Port int    // 0 picks a free port
	// Stderr receives VLC's log output. Nil discards it.
	Stderr io.Writer
	Log    *zap.SugaredLogger
}

// Player is a VLC process with its HTTP interface enabled on localhost.
type Player struct {
	*Client

	cmd    *exec.Cmd
	exited chan struct{}
}

// Start launches VLC with a random password and waits for the interface.
func Start(ctx context.Context, opts Options) (*Player, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	path := opts.Path
	if path == "" {
		path = "vlc"
	}
	if _, err := exec.LookPath(path); err != nil {
		return nil, fmt.Errorf("vlc not found: %w", err)
	}

	port := opts.Port
	if port == 0 {
		var err error
		if port, err = freePort(); err != nil {
			return nil, err
		}
	}
	password := uuid.NewString()

	cmd := exec.Command(path,
		"--extraintf", "http",
		"--http-host", "127.0.0.1",
		"--http-port", strconv.Itoa(port),
		"--http-password", password,
		"--no-video-title-show",
		"--no-sub-autodetect-file",
	)
	cmd.Stderr = opts.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start vlc: %w", err)
	}
	log.Debugw("vlc started", "port", port, "pid", cmd.Process.Pid)

	p := &Player{
		Client: NewClient("http://127.0.0.1:"+strconv.Itoa(port), password, nil),
		cmd:    cmd,
		exited: make(chan struct{}),
	}
	p.log = log
	go func() {
		_ = cmd.Wait()
		close(p.exited)
		p.shutdown()
	}()

	if err := p.waitReady(ctx); err != nil {
		_ = cmd.Process.Kill()
		<-p.exited
		return nil, err
	}
	return p, nil
}

func (p *Player) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if _, err := p.request(ctx, nil); err == nil {
			return nil
		} else if errors.Is(err, player.ErrClosed) {
			return errors.New("vlc exited during startup")
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("waiting for vlc http interface: %w", ctx.Err())
		}
	}
}

// Close stops playback and terminates VLC.
func (p *Player) Close() error {
	_ = p.Client.Close()
	select {
	case <-p.exited:
		return nil
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("kill vlc: %w", err)
	}
	<-p.exited
	return nil
}

func freePort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("find free port: %w", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
