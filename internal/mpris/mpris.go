//go:build linux

package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/player"
)

// busName is registered as org.mpris.MediaPlayer2.subrepeat.
const busName = "subrepeat"

// Adapter connects the repeat scheduler to MPRIS over D-Bus, so media keys
// skip between cues.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. media is reported as the
// album of every cue.
func New(service playback.Service, media string) (*Adapter, error) {
	root := &rootAdapter{}
	pa := &playerAdapter{service: service, media: media}

	a := &Adapter{server: server.NewServer(busName, root, pa)}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "subrepeat", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/x-matroska", "video/webm"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Tracks are
// cues: next and previous move between them.
type playerAdapter struct {
	service playback.Service
	media   string
}

func (p *playerAdapter) Next() error {
	return p.service.SkipNext()
}

func (p *playerAdapter) Previous() error {
	return p.service.SkipPrevious()
}

func (p *playerAdapter) Pause() error {
	return p.service.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.service.TogglePause()
}

func (p *playerAdapter) Stop() error {
	return p.service.Pause()
}

func (p *playerAdapter) Play() error {
	return p.service.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.service.SeekRelative(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.service.Suspend()
	return p.service.ResumeFromSeek(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.service.Status(), player.StateOf(p.service.Player())), nil
}

// playbackStatus combines the scheduler snapshot with the engine state, which
// also reflects pauses made in the player window.
func playbackStatus(st playback.Status, engine player.State) types.PlaybackStatus {
	switch {
	case !st.Ready || engine == player.Stopped:
		return types.PlaybackStatusStopped
	case st.Paused:
		return types.PlaybackStatusPaused
	case engine == player.Paused && st.State != playback.StateSeeking:
		return types.PlaybackStatusPaused
	default:
		// Settling after a repeat seek still counts as playing.
		return types.PlaybackStatusPlaying
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.service.Status(), p.media), nil
}

func metadata(st playback.Status, media string) types.Metadata {
	if st.Active == nil {
		return types.Metadata{
			TrackId: dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack"),
			Album:   media,
		}
	}
	return types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(st.ActiveIndex)),
		Length:      types.Microseconds(st.Active.Duration().Microseconds()),
		Title:       st.Active.Text,
		Album:       media,
		TrackNumber: st.ActiveIndex + 1,
	}
}

func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.service.Player().Volume()) / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	return p.service.Player().SetVolume(int(v*100 + 0.5))
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Status().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	st := p.service.Status()
	return st.CueCount > 0 && st.ActiveIndex < st.CueCount-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	st := p.service.Status()
	return st.CueCount > 0 && st.ActiveIndex != 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.Status().Ready, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus. A cue
// shown more than once reports as a looping track.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Status().RepeatTarget > 1 {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	target := p.service.Status().RepeatTarget
	switch status {
	case types.LoopStatusNone:
		p.service.SetRepeatTarget(1)
	case types.LoopStatusTrack, types.LoopStatusPlaylist:
		if target < 2 {
			p.service.SetRepeatTarget(2)
		}
	}
	return nil
}

func formatTrackID(i int) string {
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Cue/%d", i)
}
