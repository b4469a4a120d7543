//go:build !windows

package stderr

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		raw    string
		want   Line
		wantOK bool
	}{
		{"", Line{}, false},
		{"   ", Line{}, false},
		{"[ao/alsa] underrun  ", Line{Module: "ao/alsa", Text: "underrun"}, true},
		{"[ffmpeg/video] h264: corrupt frame", Line{Module: "ffmpeg/video", Text: "h264: corrupt frame"}, true},
		{"[0000560c1a2b3c40] main libvlc error: no suitable decoder", Line{Module: "main", Text: "no suitable decoder"}, true},
		{"[00007f12ab000c30] http interface: listening", Line{Module: "http", Text: "listening"}, true},
		{"plain message", Line{Text: "plain message"}, true},
		{"[unterminated", Line{Text: "[unterminated"}, true},
		{"[only-a-tag]", Line{Text: "[only-a-tag]"}, true},
	}

	for _, tt := range tests {
		got, ok := ParseLine(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLine(%q) = (%+v, %v), want (%+v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCapture(t *testing.T) {
	require.NoError(t, Start())
	require.NoError(t, Start(), "second start is a no-op")

	_, _ = os.Stderr.WriteString("\n  [ao/alsa] underrun  \n")
	select {
	case line := <-Messages:
		assert.Equal(t, Line{Module: "ao/alsa", Text: "underrun"}, line)
	case <-time.After(2 * time.Second):
		Stop()
		t.Fatal("no line captured")
	}

	// A child writing to the inherited descriptor is captured too.
	cmd := exec.Command("sh", "-c", `echo "[cplayer] from child" >&2`)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err == nil {
		select {
		case line := <-Messages:
			assert.Equal(t, Line{Module: "cplayer", Text: "from child"}, line)
		case <-time.After(2 * time.Second):
			Stop()
			t.Fatal("child output not captured")
		}
	}

	Stop()
	_, ok := <-Messages
	assert.False(t, ok, "Stop closes Messages")
}
