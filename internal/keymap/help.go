package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// displayKey renders a key for the help line.
func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	default:
		return k
	}
}

// KeyBinding converts b for the bubbles help component.
func (b Binding) KeyBinding() key.Binding {
	shown := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		shown = append(shown, displayKey(k))
	}
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(strings.Join(shown, "/"), b.Description),
	)
}

// HelpMap implements help.KeyMap over a set of bindings.
type HelpMap struct {
	Short    []Action
	Bindings []Binding
}

// DefaultHelp shows the most used actions of bindings in the short help
// line.
func DefaultHelp(bindings []Binding) HelpMap {
	return HelpMap{
		Short: []Action{
			ActionPlayPause, ActionPrevCue, ActionNextCue,
			ActionRepeatMore, ActionRepeatLess, ActionHelp, ActionQuit,
		},
		Bindings: bindings,
	}
}

// ShortHelp returns the bindings of the short help line.
func (h HelpMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, a := range h.Short {
		for _, b := range h.Bindings {
			if b.Action == a {
				out = append(out, b.KeyBinding())
				break
			}
		}
	}
	return out
}

// FullHelp returns one column per context.
func (h HelpMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, ctx := range []string{"playback", "subtitles", "global"} {
		var col []key.Binding
		for _, b := range filterContext(h.Bindings, ctx) {
			col = append(col, b.KeyBinding())
		}
		cols = append(cols, col)
	}
	return cols
}
