// internal/player/interface.go
package player

import "time"

// Interface is the contract the repeat scheduler drives. Implementations wrap an
// external media engine and must be safe for concurrent use.
type Interface interface {
	Load(path string) error
	Play() error
	Pause() error
	IsPaused() bool
	// Position and Duration report ok=false until media is loaded and the
	// engine knows the value.
	Position() (time.Duration, bool)
	Duration() (time.Duration, bool)
	SeekTo(pos time.Duration) error
	SetVolume(percent int) error
	Volume() int
	SetFullscreen(on bool) error
	Fullscreen() bool
	// Done is closed when the engine exits, e.g. the video window was closed.
	Done() <-chan struct{}
	Close() error
}

// TextOverlay is implemented by engines that can draw text over the video.
type TextOverlay interface {
	ShowText(text string, d time.Duration) error
}

// Verify Mock implements the optional interfaces at compile time.
var (
	_ Interface   = (*Mock)(nil)
	_ TextOverlay = (*Mock)(nil)
)
