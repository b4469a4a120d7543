package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/subrepeat/internal/config"
	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/keymap"
	"github.com/llehouerou/subrepeat/internal/playback"
)

// commandContext holds flag values shared by the commands.
type commandContext struct {
	configFlag  string
	repeatFlag  string
	delayFlag   string
	mergeFlag   string
	backendFlag string
	logFile     string
	verbose     bool
	noTUI       bool
	noWatch     bool
}

// settings is the configuration after flags are applied.
type settings struct {
	cfg    *config.Config
	repeat   int
	shift    time.Duration
	bindings []keymap.Binding

	// warnings are values that fell back to their defaults.
	warnings []playback.Notice
}

// resolve loads the config files and applies the flags set on cmd. Invalid
// repeat or delay values fall back to their defaults with a warning; an
// unusable config file or backend is an error.
func (c *commandContext) resolve(cmd *cobra.Command) (*settings, error) {
	cfg, err := config.Load(c.configFlag)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpLoadConfig, c.configFlag, err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = strings.ToLower(strings.TrimSpace(c.backendFlag))
	}
	if flags.Changed("merge") {
		cfg.MergeSymbol = c.mergeFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}

	if flags.Changed("repeat") {
		s.repeat, err = config.ParseRepeat(c.repeatFlag)
	} else {
		s.repeat, err = cfg.RepeatTarget()
	}
	s.warn(errmsg.OpParseRepeat, err)

	if flags.Changed("delay") {
		s.shift, err = config.ParseDelay(c.delayFlag)
	} else {
		s.shift = cfg.Shift()
		err = nil
	}
	s.warn(errmsg.OpParseDelay, err)

	var errs []error
	s.bindings, errs = keymap.Apply(keymap.Bindings, cfg.Keys)
	for _, err := range errs {
		s.warn(errmsg.OpLoadConfig, err)
	}
	for _, c := range keymap.NewResolver(s.bindings).Conflicts() {
		s.warn(errmsg.OpLoadConfig, fmt.Errorf("keys: %q is bound to %s, not %s", c.Key, c.Kept, c.Dropped))
	}

	return s, nil
}

func (s *settings) warn(op errmsg.Op, err error) {
	if err == nil {
		return
	}
	s.warnings = append(s.warnings, playback.Notice{
		Level: playback.LevelWarning,
		Op:    op,
		Err:   err,
	})
}
