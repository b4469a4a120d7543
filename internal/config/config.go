package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "subrepeat"

// Backends understood by the player factory.
const (
	BackendMPV = "mpv"
	BackendVLC = "vlc"
)

// Defaults for values users may leave out or get wrong.
const (
	DefaultRepeat      = 1
	DefaultMergeSymbol = "..."
)

type Config struct {
	Backend       string  `koanf:"backend"`      // "mpv" or "vlc"
	Repeat        int     `koanf:"repeat"`       // times each cue is shown, >= 1
	Delay         float64 `koanf:"delay"`        // subtitle shift in seconds
	MergeSymbol   string  `koanf:"merge_symbol"` // "" disables merging
	Notifications bool    `koanf:"notifications"`
	MPRIS         *bool   `koanf:"mpris"` // default: true
	OSD           *bool   `koanf:"osd"`   // default: true

	Timing TimingConfig `koanf:"timing"`
	MPV    MPVConfig    `koanf:"mpv"`
	VLC    VLCConfig    `koanf:"vlc"`

	// Keys replaces the default keys of an action, e.g.
	// next_cue = ["n", "right"].
	Keys map[string][]string `koanf:"keys"`
}

// TimingConfig holds scheduler and UI step sizes.
type TimingConfig struct {
	PollIntervalMS int `koanf:"poll_interval_ms"` // default: 50
	SettleDelayMS  int `koanf:"settle_delay_ms"`  // default: 250
	PrerollMS      int `koanf:"preroll_ms"`       // default: 500, negative disables
	SeekStepMS     int `koanf:"seek_step_ms"`     // default: 5000
	VolumeStep     int `koanf:"volume_step"`      // default: 5 (1-50)
}

// MPVConfig holds mpv launch settings.
type MPVConfig struct {
	Path string   `koanf:"path"`
	Args []string `koanf:"args"` // extra arguments passed to mpv
}

// VLCConfig holds VLC launch settings.
type VLCConfig struct {
	Path string `koanf:"path"`
	Port int    `koanf:"port"` // 0 picks a free port
}

// InvalidConfigurationError reports a setting that could not be used. The
// caller falls back to a default and shows Err to the user.
type InvalidConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Key, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Key, e.Value, e.Err)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:     BackendMPV,
		Repeat:      DefaultRepeat,
		MergeSymbol: DefaultMergeSymbol,
		MPV:         MPVConfig{Path: "mpv"},
		VLC:         VLCConfig{Path: "vlc"},
	}
}

// Load reads the config files in priority order. An explicit path must exist;
// the implicit ones are optional.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.MPV.Path = expandPath(cfg.MPV.Path)
	cfg.VLC.Path = expandPath(cfg.VLC.Path)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/subrepeat/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./subrepeat.toml (pwd, highest priority)
	paths = append(paths, appName+".toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMPV, BackendVLC:
	default:
		return &InvalidConfigurationError{
			Key:   "backend",
			Value: c.Backend,
			Err:   fmt.Errorf("want %q or %q", BackendMPV, BackendVLC),
		}
	}
	if c.VLC.Port < 0 || c.VLC.Port > 65535 {
		return &InvalidConfigurationError{Key: "vlc.port", Value: strconv.Itoa(c.VLC.Port)}
	}
	return nil
}

// RepeatTarget returns Repeat, or DefaultRepeat with an error when it is
// below one.
func (c *Config) RepeatTarget() (int, error) {
	if c.Repeat < 1 {
		return DefaultRepeat, &InvalidConfigurationError{
			Key:   "repeat",
			Value: strconv.Itoa(c.Repeat),
			Err:   errRepeatRange,
		}
	}
	return c.Repeat, nil
}

// Shift returns Delay as a duration.
func (c *Config) Shift() time.Duration {
	return secondsToDuration(c.Delay)
}

// MPRISEnabled reports whether media keys are registered.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// OSDEnabled reports whether the active cue is mirrored on the player OSD.
func (c *Config) OSDEnabled() bool {
	return c.OSD == nil || *c.OSD
}

// GetTiming returns the timing configuration with defaults applied.
func (c *Config) GetTiming() TimingConfig {
	cfg := c.Timing

	// Apply defaults
	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = 50
	}
	if cfg.SettleDelayMS <= 0 {
		cfg.SettleDelayMS = 250
	}
	if cfg.PrerollMS == 0 {
		cfg.PrerollMS = 500
	}
	if cfg.PrerollMS < 0 {
		cfg.PrerollMS = 0
	}
	if cfg.SeekStepMS <= 0 {
		cfg.SeekStepMS = 5000
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 50 {
		cfg.VolumeStep = 5
	}

	return cfg
}

func (t TimingConfig) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalMS) * time.Millisecond
}

func (t TimingConfig) SettleDelay() time.Duration {
	return time.Duration(t.SettleDelayMS) * time.Millisecond
}

func (t TimingConfig) Preroll() time.Duration {
	return time.Duration(t.PrerollMS) * time.Millisecond
}

func (t TimingConfig) SeekStep() time.Duration {
	return time.Duration(t.SeekStepMS) * time.Millisecond
}
