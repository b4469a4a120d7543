// Package mpv drives an mpv process over its JSON IPC socket.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/player"
)

const commandTimeout = 3 * time.Second

// transportTimeout bounds how long pause and seek wait for a reply. Callers
// hold the scheduler lock meanwhile; a command still unanswered after it is
// treated as in flight and a late error is only logged.
const transportTimeout = 250 * time.Millisecond

// Observed property ids.
const (
	obsTimePos = iota + 1
	obsDuration
	obsPause
	obsFullscreen
	obsVolume
)

var observed = map[int]string{
	obsTimePos:    "time-pos",
	obsDuration:   "duration",
	obsPause:      "pause",
	obsFullscreen: "fullscreen",
	obsVolume:     "volume",
}

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// message is either a command reply (RequestID set) or an event.
type message struct {
	RequestID *int64          `json:"request_id"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Event     string          `json:"event"`
	ID        int             `json:"id"`
	Name      string          `json:"name"`
}

type reply struct {
	data json.RawMessage
	err  error
}

// status is the cache fed by property-change events.
type status struct {
	timePos    *float64
	duration   *float64
	paused     bool
	fullscreen bool
	volume     float64
}

// client is one IPC connection.
type client struct {
	conn io.ReadWriteCloser
	log  *zap.SugaredLogger

	writeMu sync.Mutex
	nextID  atomic.Int64

	mu      sync.Mutex
	pending map[int64]chan reply
	st      status

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the IPC socket of a running mpv.
func Dial(ctx context.Context, socket string, log *zap.SugaredLogger) (*Player, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socket)
	if err != nil {
		return nil, fmt.Errorf("connect to mpv: %w", err)
	}
	c := newClient(conn, log)
	if err := c.observeAll(); err != nil {
		c.shutdown()
		return nil, err
	}
	return &Player{client: c}, nil
}

func newClient(conn io.ReadWriteCloser, log *zap.SugaredLogger) *client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &client{
		conn:    conn,
		log:     log,
		pending: make(map[int64]chan reply),
		st:      status{paused: true, volume: 100},
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *client) observeAll() error {
	for id := obsTimePos; id <= obsVolume; id++ {
		if _, err := c.command("observe_property", id, observed[id]); err != nil {
			return fmt.Errorf("observe %s: %w", observed[id], err)
		}
	}
	return nil
}

func (c *client) readLoop() {
	defer c.shutdown()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var msg message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			c.log.Debugw("mpv: undecodable message", "error", err)
			continue
		}
		if msg.RequestID != nil {
			c.resolve(*msg.RequestID, msg)
			continue
		}
		c.handleEvent(msg)
	}
	if err := scanner.Err(); err != nil {
		c.log.Debugw("mpv: connection lost", "error", err)
	}
}

func (c *client) resolve(id int64, msg message) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		return
	}
	ch <- reply{data: msg.Data, err: replyError(msg.Error)}
}

func replyError(s string) error {
	switch s {
	case "", "success":
		return nil
	case "property unavailable":
		return fmt.Errorf("%w: %s", player.ErrUnavailable, s)
	default:
		return errors.New(s)
	}
}

func (c *client) handleEvent(msg message) {
	switch msg.Event {
	case "property-change":
		c.mu.Lock()
		c.updateLocked(msg.ID, msg.Data)
		c.mu.Unlock()
	case "end-file":
		c.mu.Lock()
		c.st.timePos = nil
		c.st.duration = nil
		c.mu.Unlock()
	case "shutdown":
		c.shutdown()
	}
}

// updateLocked applies a property-change. A missing or null value means the
// property is unavailable.
func (c *client) updateLocked(id int, data json.RawMessage) {
	var f *float64
	var b bool
	switch id {
	case obsTimePos, obsDuration, obsVolume:
		if len(data) > 0 && string(data) != "null" {
			var v float64
			if json.Unmarshal(data, &v) == nil {
				f = &v
			}
		}
	case obsPause, obsFullscreen:
		_ = json.Unmarshal(data, &b)
	}

	switch id {
	case obsTimePos:
		c.st.timePos = f
	case obsDuration:
		c.st.duration = f
	case obsVolume:
		if f != nil {
			c.st.volume = *f
		}
	case obsPause:
		c.st.paused = b
	case obsFullscreen:
		c.st.fullscreen = b
	}
}

// command sends one IPC command and waits for its reply.
func (c *client) command(args ...any) (json.RawMessage, error) {
	id, ch, err := c.send(args)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("mpv %s: %w", commandName(args), r.err)
		}
		return r.data, nil
	case <-c.done:
		return nil, player.ErrClosed
	case <-timer.C:
		c.forget(id)
		return nil, fmt.Errorf("mpv %s: no reply within %v", commandName(args), commandTimeout)
	}
}

// transport sends a playback command and waits at most transportTimeout.
// No reply by then is not an error: the command was delivered and mpv
// applies it in order.
func (c *client) transport(args ...any) error {
	id, ch, err := c.send(args)
	if err != nil {
		return err
	}

	timer := time.NewTimer(transportTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("mpv %s: %w", commandName(args), r.err)
		}
		return nil
	case <-c.done:
		return player.ErrClosed
	case <-timer.C:
		go c.awaitLate(id, ch, args)
		return nil
	}
}

func (c *client) awaitLate(id int64, ch <-chan reply, args []any) {
	timer := time.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		if r.err != nil {
			c.log.Warnw("mpv: late command failure", "command", commandName(args), "error", r.err)
		}
	case <-c.done:
	case <-timer.C:
		c.forget(id)
		c.log.Warnw("mpv: command unanswered", "command", commandName(args))
	}
}

func (c *client) send(args []any) (int64, chan reply, error) {
	select {
	case <-c.done:
		return 0, nil, player.ErrClosed
	default:
	}

	id := c.nextID.Add(1)
	ch := make(chan reply, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	line, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		c.forget(id)
		return 0, nil, err
	}
	line = append(line, '\n')

	c.writeMu.Lock()
	_, err = c.conn.Write(line)
	c.writeMu.Unlock()
	if err != nil {
		c.forget(id)
		return 0, nil, fmt.Errorf("%w: %v", player.ErrClosed, err)
	}
	return id, ch, nil
}

func (c *client) forget(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func commandName(args []any) string {
	if len(args) == 0 {
		return ""
	}
	name := fmt.Sprint(args[0])
	if name == "set_property" && len(args) > 1 {
		return name + " " + fmt.Sprint(args[1])
	}
	return strings.TrimSpace(name)
}

func (c *client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *client) snapshot() status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}
