//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectNonEmpty  bool
		expectMinLength int
	}{
		{"global context", "global", true, 2},
		{"playback context", "playback", true, 5},
		{"subtitles context", "subtitles", true, 5},
		{"unknown context returns empty", "unknown", false, 0},
		{"empty context returns empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectNonEmpty && len(result) == 0 {
				t.Errorf("ByContext(%q) returned empty, expected non-empty", tt.context)
			}

			if !tt.expectNonEmpty && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}

			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}

			// Verify all returned bindings have the correct context
			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestByContextPlaybackBindings(t *testing.T) {
	playbackBindings := ByContext("playback")

	// Check that essential playback bindings exist
	expectedActions := []Action{
		ActionPlayPause,
		ActionNextCue,
		ActionPrevCue,
		ActionSeekForward,
		ActionSeekBack,
	}

	for _, action := range expectedActions {
		found := false
		for _, b := range playbackBindings {
			if b.Action == action {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected action %q in playback bindings", action)
		}
	}
}

func TestBindingsHaveRequiredFields(t *testing.T) {
	for i, b := range Bindings {
		if b.Action == "" {
			t.Errorf("binding[%d] has empty Action", i)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding[%d] (%s) has no Keys", i, b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding[%d] (%s) has empty Description", i, b.Action)
		}
		if b.Context == "" {
			t.Errorf("binding[%d] (%s) has empty Context", i, b.Action)
		}
	}
}

func TestBindingsHaveValidContexts(t *testing.T) {
	validContexts := map[string]bool{
		"global":    true,
		"playback":  true,
		"subtitles": true,
	}

	for i, b := range Bindings {
		if !validContexts[b.Context] {
			t.Errorf("binding[%d] (%s) has invalid context: %q", i, b.Action, b.Context)
		}
	}
}

func TestBindingsKeysAreUnique(t *testing.T) {
	for _, c := range NewResolver(Bindings).Conflicts() {
		t.Errorf("key %q bound to both %q and %q", c.Key, c.Kept, c.Dropped)
	}
}

func TestHelpMap(t *testing.T) {
	h := DefaultHelp(Bindings)

	short := h.ShortHelp()
	if len(short) != len(h.Short) {
		t.Fatalf("ShortHelp() returned %d bindings, want %d", len(short), len(h.Short))
	}
	if got := short[0].Help().Key; got != "space" {
		t.Errorf("play/pause help key = %q, want %q", got, "space")
	}
	if got := short[1].Help().Key; got != "←/h" {
		t.Errorf("previous help key = %q, want %q", got, "←/h")
	}

	full := h.FullHelp()
	if len(full) != 3 {
		t.Fatalf("FullHelp() returned %d columns, want 3", len(full))
	}
	total := 0
	for _, col := range full {
		total += len(col)
	}
	if total != len(Bindings) {
		t.Errorf("FullHelp() lists %d bindings, want %d", total, len(Bindings))
	}
}

func TestHelpMap_ShowsOverriddenKeys(t *testing.T) {
	bindings, errs := Apply(Bindings, map[string][]string{"play_pause": {"p"}})
	if len(errs) != 0 {
		t.Fatalf("Apply() errors = %v", errs)
	}

	short := DefaultHelp(bindings).ShortHelp()
	if got := short[0].Help().Key; got != "p" {
		t.Errorf("play/pause help key = %q, want %q", got, "p")
	}
}
