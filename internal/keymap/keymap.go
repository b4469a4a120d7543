package keymap

// Binding maps keys to an action, with a description for help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "subtitles"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextCue, []string{"right", "l"}, "Next subtitle", "playback"},
	{ActionPrevCue, []string{"left", "h"}, "Previous subtitle", "playback"},
	{ActionSeekForward, []string{"."}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{","}, "Seek -5s", "playback"},
	{ActionVolumeUp, []string{"up", "k"}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"down", "j"}, "Volume down", "playback"},
	{ActionFullscreen, []string{"f"}, "Toggle fullscreen", "playback"},

	// Subtitles
	{ActionRepeatMore, []string{"+", "="}, "More repeats", "subtitles"},
	{ActionRepeatLess, []string{"-"}, "Fewer repeats", "subtitles"},
	{ActionDelayEarlier, []string{"["}, "Subtitles 0.1s earlier", "subtitles"},
	{ActionDelayLater, []string{"]"}, "Subtitles 0.1s later", "subtitles"},
	{ActionDelayEarlierLong, []string{"{"}, "Subtitles 1s earlier", "subtitles"},
	{ActionDelayLaterLong, []string{"}"}, "Subtitles 1s later", "subtitles"},
	{ActionSetRepeat, []string{"R"}, "Set repeat count", "subtitles"},
	{ActionSetDelay, []string{"D"}, "Set subtitle delay", "subtitles"},
	{ActionReload, []string{"r"}, "Reload subtitles", "subtitles"},
}

// ByContext returns the default bindings of a context.
func ByContext(context string) []Binding {
	return filterContext(Bindings, context)
}

func filterContext(bindings []Binding, context string) []Binding {
	var result []Binding
	for _, kb := range bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
