package keymap

import (
	"fmt"
	"strings"
)

// Apply returns bindings with the keys of some actions replaced. Overrides
// are keyed by action name, e.g. {"next_cue": ["n", "right"]}. Unknown
// actions and empty key lists are skipped and reported.
func Apply(bindings []Binding, overrides map[string][]string) ([]Binding, []error) {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	if len(overrides) == 0 {
		return out, nil
	}

	pos := make(map[Action]int, len(out))
	for i, b := range out {
		pos[b.Action] = i
	}

	var errs []error
	for name, keys := range overrides {
		i, ok := pos[Action(strings.TrimSpace(name))]
		if !ok {
			errs = append(errs, fmt.Errorf("keys: unknown action %q", name))
			continue
		}
		keys = normalizeKeys(keys)
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("keys: no keys for %q", name))
			continue
		}
		out[i].Keys = keys
	}
	return out, errs
}

// normalizeKeys accepts the names shown in the help line as well as the raw
// key strings.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case "space", "Space", "SPACE":
			k = " "
		case "":
			continue
		}
		out = append(out, k)
	}
	return out
}
