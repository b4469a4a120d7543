// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionReload Action = "reload" // r - reload subtitle file

	// Playback actions
	ActionPlayPause        Action = "play_pause"
	ActionNextCue          Action = "next_cue"
	ActionPrevCue          Action = "prev_cue"
	ActionSeekForward      Action = "seek_forward"
	ActionSeekBack         Action = "seek_back"
	ActionVolumeUp         Action = "volume_up"
	ActionVolumeDown       Action = "volume_down"
	ActionFullscreen       Action = "fullscreen"
	ActionRepeatMore       Action = "repeat_more"
	ActionRepeatLess       Action = "repeat_less"
	ActionDelayEarlier     Action = "delay_earlier" // [ - subtitles 0.1s earlier
	ActionDelayLater       Action = "delay_later"
	ActionDelayEarlierLong Action = "delay_earlier_long" // { - 1s
	ActionDelayLaterLong   Action = "delay_later_long"
	ActionSetRepeat        Action = "set_repeat" // R - type a repeat count
	ActionSetDelay         Action = "set_delay"  // D - type a delay in seconds
)
