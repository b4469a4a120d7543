package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/subrepeat/internal/config"
	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/keymap"
	"github.com/llehouerou/subrepeat/internal/logging"
	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/subtitle"
)

const srt = `1
00:00:01,000 --> 00:00:02,000
Hello...

2
00:00:02,000 --> 00:00:03,000
...world

3
00:00:05,000 --> 00:00:06,500
Bye
`

// isolate runs the test from an empty directory with an empty explicit
// config so no project file leaks in.
func isolate(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	configPath = filepath.Join(dir, "config.toml")
	writeFile(t, configPath, "")
	return dir, configPath
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resolveArgs(t *testing.T, args ...string) (*settings, error) {
	t.Helper()
	c := &commandContext{}
	cmd := newRootCommandWith(c)
	require.NoError(t, cmd.ParseFlags(args))
	return c.resolve(cmd)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func TestResolve_ConfigValues(t *testing.T) {
	_, cfgPath := isolate(t)
	writeFile(t, cfgPath, "backend = \"VLC\"\nrepeat = 2\ndelay = -0.5\nmerge_symbol = \"--\"\n")

	s, err := resolveArgs(t, "--config", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, config.BackendVLC, s.cfg.Backend)
	assert.Equal(t, 2, s.repeat)
	assert.Equal(t, -500*time.Millisecond, s.shift)
	assert.Equal(t, "--", s.cfg.MergeSymbol)
	assert.Empty(t, s.warnings)
}

func TestResolve_FlagsOverrideConfig(t *testing.T) {
	_, cfgPath := isolate(t)
	writeFile(t, cfgPath, "repeat = 2\ndelay = 1.5\nmerge_symbol = \"--\"\n")

	s, err := resolveArgs(t, "--config", cfgPath,
		"--repeat", "4", "--delay", "0,25", "--merge", "", "--backend", "vlc")
	require.NoError(t, err)

	assert.Equal(t, 4, s.repeat)
	assert.Equal(t, 250*time.Millisecond, s.shift)
	assert.Empty(t, s.cfg.MergeSymbol)
	assert.Equal(t, config.BackendVLC, s.cfg.Backend)
}

func TestResolve_InvalidValuesFallBack(t *testing.T) {
	_, cfgPath := isolate(t)

	s, err := resolveArgs(t, "--config", cfgPath, "--repeat", "zero", "--delay", "soon")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRepeat, s.repeat)
	assert.Zero(t, s.shift)
	require.Len(t, s.warnings, 2)
	assert.Equal(t, errmsg.OpParseRepeat, s.warnings[0].Op)
	assert.Equal(t, errmsg.OpParseDelay, s.warnings[1].Op)
	assert.Equal(t, playback.LevelWarning, s.warnings[0].Level)

	var ice *config.InvalidConfigurationError
	assert.True(t, errors.As(s.warnings[0].Err, &ice))
}

func TestResolve_InvalidRepeatInConfigFallsBack(t *testing.T) {
	_, cfgPath := isolate(t)
	writeFile(t, cfgPath, "repeat = 0\n")

	s, err := resolveArgs(t, "--config", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRepeat, s.repeat)
	require.Len(t, s.warnings, 1)
}

func TestResolve_Errors(t *testing.T) {
	dir, cfgPath := isolate(t)

	_, err := resolveArgs(t, "--config", cfgPath, "--backend", "xine")
	var ice *config.InvalidConfigurationError
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, "backend", ice.Key)

	_, err = resolveArgs(t, "--config", filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "load configuration")
}

func TestCuesCommand(t *testing.T) {
	dir, cfgPath := isolate(t)
	path := writeFile(t, filepath.Join(dir, "episode.srt"), srt)

	out, errOut, err := execute(t, "cues", path, "--config", cfgPath,
		"--merge", "...", "--delay", "0.5", "--repeat", "3")
	require.NoError(t, err)

	assert.Empty(t, errOut)
	assert.Contains(t, out, "0:00:01.500")
	assert.Contains(t, out, "0:00:03.500")
	assert.Contains(t, out, "Hello / world")
	assert.Contains(t, out, "Bye")
	assert.Contains(t, out, "2 cues")
	assert.Contains(t, out, "delay +0.5s")
	assert.Contains(t, out, "×3 repeats")
}

func TestCuesCommand_WarnsOnInvalidRepeat(t *testing.T) {
	dir, cfgPath := isolate(t)
	path := writeFile(t, filepath.Join(dir, "episode.srt"), srt)

	out, errOut, err := execute(t, "cues", path, "--config", cfgPath, "--repeat", "-2")
	require.NoError(t, err)

	assert.Contains(t, errOut, "warning:")
	assert.Contains(t, out, "Hello / world", "merged with the default symbol")
	assert.Contains(t, out, "2 cues")
}

func TestCuesCommand_EmptyFile(t *testing.T) {
	dir, cfgPath := isolate(t)
	path := writeFile(t, filepath.Join(dir, "empty.srt"), "")

	_, _, err := execute(t, "cues", path, "--config", cfgPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty.srt")
}

func TestRootCommand_NoArgsShowsHelp(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "subrepeat [video] [subtitle]")
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	_, _, err := execute(t, "a.mkv", "a.srt", "extra")
	assert.Error(t, err)
}

func TestRenderCues(t *testing.T) {
	idx, errs := cue.NewIndex([]cue.Cue{
		{Start: time.Second, End: 2500 * time.Millisecond, Text: "Bonjour.\nÇa va ?"},
	})
	require.Empty(t, errs)

	out := renderCues(idx, 1, 0)

	assert.Contains(t, out, "0:00:01.000")
	assert.Contains(t, out, "0:00:02.500")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "Bonjour. / Ça va ?")
	assert.Contains(t, out, "1 cue ·")
	assert.NotContains(t, out, "repeats")
	assert.NotContains(t, out, "delay")
}

func TestCueSummary_LargeCount(t *testing.T) {
	cues := make([]cue.Cue, 1234)
	for i := range cues {
		start := time.Duration(i) * 2 * time.Second
		cues[i] = cue.Cue{Start: start, End: start + time.Second, Text: "x"}
	}
	idx, errs := cue.NewIndex(cues)
	require.Empty(t, errs)

	assert.Equal(t, "1,234 cues · 0:20:34 of dialogue · 1:01:42 with ×3 repeats",
		cueSummary(idx, 1234*time.Second, 3))
}

func TestFormatCueLine(t *testing.T) {
	c := cue.Cue{Start: 62500 * time.Millisecond, End: 64 * time.Second, Text: "one\n two "}

	tests := []struct {
		name string
		e    playback.CueChange
		want string
	}{
		{"first play", playback.CueChange{Index: 3, Cue: &c, RepeatsDone: 0, RepeatTarget: 3}, "[0:01:02.500] 1/3  one / two"},
		{"repeat", playback.CueChange{Index: 3, Cue: &c, RepeatsDone: 2, RepeatTarget: 3}, "[0:01:02.500] 3/3  one / two"},
		{"gap", playback.CueChange{Index: -1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCueLine(tt.e))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00.000"},
		{-time.Second, "0:00:00.000"},
		{1500 * time.Millisecond, "0:00:01.500"},
		{time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, "1:02:03.004"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.d); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestResolveSubtitle(t *testing.T) {
	dir := t.TempDir()
	video := writeFile(t, filepath.Join(dir, "movie.mkv"), "")
	sibling := writeFile(t, filepath.Join(dir, "movie.srt"), srt)
	other := writeFile(t, filepath.Join(dir, "other.ass"), "")

	got, err := resolveSubtitle(t.Context(), video, other, nil)
	require.NoError(t, err)
	assert.Equal(t, other, got)

	got, err = resolveSubtitle(t.Context(), video, "", logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, sibling, got)
}

func TestFresh(t *testing.T) {
	dir := t.TempDir()
	video := writeFile(t, filepath.Join(dir, "movie.mkv"), "v")
	extracted := writeFile(t, filepath.Join(dir, "movie.srt"), srt)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(video, old, old))
	assert.True(t, fresh(extracted, video))

	require.NoError(t, os.Chtimes(extracted, old.Add(-time.Hour), old.Add(-time.Hour)))
	assert.False(t, fresh(extracted, video), "older than the video")

	assert.False(t, fresh(filepath.Join(dir, "missing.srt"), video))
	empty := writeFile(t, filepath.Join(dir, "empty.srt"), "")
	assert.False(t, fresh(empty, video), "empty file")
}

func TestExtractedPathUsesCache(t *testing.T) {
	got := subtitle.ExtractedPath(cacheDir(), "/videos/Show S01E01.mkv")
	assert.Equal(t, filepath.Join(cacheDir(), "Show S01E01.srt"), got)
}

func TestResolve_KeyOverrides(t *testing.T) {
	_, cfgPath := isolate(t)
	writeFile(t, cfgPath, "[keys]\nnext_cue = [\"n\"]\nseek_forward = [\"n\", \".\"]\nwarp = [\"w\"]\n")

	s, err := resolveArgs(t, "--config", cfgPath)
	require.NoError(t, err)

	r := keymap.NewResolver(s.bindings)
	assert.Equal(t, keymap.ActionNextCue, r.Resolve("n"))
	assert.Equal(t, keymap.ActionSeekForward, r.Resolve("."))

	require.Len(t, s.warnings, 2)
	var msgs []string
	for _, w := range s.warnings {
		assert.Equal(t, errmsg.OpLoadConfig, w.Op)
		msgs = append(msgs, w.Message())
	}
	assert.Contains(t, strings.Join(msgs, "\n"), `unknown action "warp"`)
	assert.Contains(t, strings.Join(msgs, "\n"), `"n" is bound to next_cue`)
}
