// Package vlc drives VLC through its HTTP interface.
package vlc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/player"
)

const (
	requestTimeout = 2 * time.Second
	// transportTimeout bounds how long play, pause, seek and status reads
	// block their caller. A command still running after it completes in
	// the background.
	transportTimeout = 500 * time.Millisecond
	// statusTTL lets Position and Duration share one request per poll.
	statusTTL = 30 * time.Millisecond
	// maxVolume is VLC's 100% on its 0..512 scale.
	maxVolume = 256
)

// status mirrors the fields of /requests/status.json that are used.
type status struct {
	Time       float64 `json:"time"`
	Length     float64 `json:"length"`
	Position   float64 `json:"position"`
	State      string  `json:"state"`
	Volume     float64 `json:"volume"`
	Fullscreen any     `json:"fullscreen"` // bool, or 0 on some versions
}

func (s status) fullscreen() bool {
	switch v := s.Fullscreen.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return false
	}
}

// Client talks to a VLC HTTP interface. It has no process of its own; see
// Start for a managed instance.
type Client struct {
	base     string
	password string
	http     *http.Client
	log      *zap.SugaredLogger

	mu       sync.Mutex
	last     status
	lastAt   time.Time
	haveLast bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client for the interface at baseURL, e.g.
// "http://127.0.0.1:8080". A nil httpClient uses a client with a short
// timeout.
func NewClient(baseURL, password string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		base:     baseURL,
		password: password,
		http:     httpClient,
		log:      zap.NewNop().Sugar(),
		done:     make(chan struct{}),
	}
}

// request runs a status.json command and caches the returned status.
func (c *Client) request(ctx context.Context, params url.Values) (status, error) {
	select {
	case <-c.done:
		return status{}, player.ErrClosed
	default:
	}

	u := c.base + "/requests/status.json"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return status{}, err
	}
	req.SetBasicAuth("", c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return status{}, fmt.Errorf("vlc request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return status{}, fmt.Errorf("vlc rejected credentials: %s", resp.Status)
	default:
		return status{}, fmt.Errorf("vlc request: %s", resp.Status)
	}

	var st status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return status{}, fmt.Errorf("decode vlc status: %w", err)
	}

	c.mu.Lock()
	c.last = st
	c.lastAt = time.Now()
	c.haveLast = true
	c.mu.Unlock()
	return st, nil
}

func (c *Client) command(name string, extra ...string) error {
	params := url.Values{"command": {name}}
	for i := 0; i+1 < len(extra); i += 2 {
		params.Set(extra[i], extra[i+1])
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	_, err := c.request(ctx, params)
	return err
}

// transport runs a playback command, returning once it completes or after
// transportTimeout, whichever is first.
func (c *Client) transport(name string, extra ...string) error {
	errc := make(chan error, 1)
	go func() { errc <- c.command(name, extra...) }()

	timer := time.NewTimer(transportTimeout)
	defer timer.Stop()
	select {
	case err := <-errc:
		return err
	case <-c.done:
		return player.ErrClosed
	case <-timer.C:
		go func() {
			if err := <-errc; err != nil {
				c.log.Warnw("vlc: late command failure", "command", name, "error", err)
			}
		}()
		return nil
	}
}

// status returns a recent status, fetching one when the cache is stale.
func (c *Client) status() (status, bool) {
	c.mu.Lock()
	if c.haveLast && time.Since(c.lastAt) < statusTTL {
		st := c.last
		c.mu.Unlock()
		return st, true
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), transportTimeout)
	defer cancel()
	st, err := c.request(ctx, nil)
	if err != nil {
		return status{}, false
	}
	return st, true
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.haveLast = false
	c.mu.Unlock()
}

// Load replaces the playlist with path and starts it.
func (c *Client) Load(path string) error {
	defer c.invalidate()
	return c.command("in_play", "input", fileURI(path))
}

func (c *Client) Play() error {
	defer c.invalidate()
	return c.transport("pl_forceresume")
}

func (c *Client) Pause() error {
	defer c.invalidate()
	return c.transport("pl_forcepause")
}

func (c *Client) IsPaused() bool {
	st, ok := c.status()
	return !ok || st.State != "playing"
}

// Position combines the fractional position with the length, since "time"
// only has whole seconds.
func (c *Client) Position() (time.Duration, bool) {
	st, ok := c.status()
	if !ok || st.Length <= 0 || st.State == "stopped" {
		return 0, false
	}
	return time.Duration(st.Position * st.Length * float64(time.Second)), true
}

func (c *Client) Duration() (time.Duration, bool) {
	st, ok := c.status()
	if !ok || st.Length <= 0 || st.State == "stopped" {
		return 0, false
	}
	return time.Duration(st.Length * float64(time.Second)), true
}

// SeekTo seeks by percentage of the length for sub-second precision.
func (c *Client) SeekTo(pos time.Duration) error {
	length, ok := c.Duration()
	if !ok {
		return player.ErrUnavailable
	}
	defer c.invalidate()
	pct := 100 * float64(pos) / float64(length)
	pct = min(max(pct, 0), 100)
	return c.transport("seek", "val", strconv.FormatFloat(pct, 'f', 5, 64)+"%")
}

func (c *Client) SetVolume(percent int) error {
	defer c.invalidate()
	v := player.ClampVolume(percent) * maxVolume / 100
	return c.command("volume", "val", strconv.Itoa(v))
}

func (c *Client) Volume() int {
	st, ok := c.status()
	if !ok {
		return 0
	}
	return player.ClampVolume(int(st.Volume*100/maxVolume + 0.5))
}

// SetFullscreen toggles only when the state differs; VLC has no absolute
// fullscreen command.
func (c *Client) SetFullscreen(on bool) error {
	if c.Fullscreen() == on {
		return nil
	}
	defer c.invalidate()
	return c.command("fullscreen")
}

func (c *Client) Fullscreen() bool {
	st, ok := c.status()
	return ok && st.fullscreen()
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close stops playback and marks the client closed.
func (c *Client) Close() error {
	_ = c.command("pl_stop")
	c.shutdown()
	return nil
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

func fileURI(path string) string {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return path
	}
	return (&url.URL{Scheme: "file", Path: absPath(path)}).String()
}
