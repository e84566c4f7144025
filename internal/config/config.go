package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogFile   = "LOG_FILE_PATH"
	EnvPlaySound = "CUSTOM_LOGGER_PLAY_ERROR_SOUND"
	EnvConfig    = "CONSOLELOG_CONFIG"
)

// DefaultConfigFile is used when neither --config nor CONSOLELOG_CONFIG is set.
const DefaultConfigFile = "consolelog.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var validBackends = map[string]bool{"auto": true, "command": true, "beep": true, "none": true}

var validSeverities = map[string]bool{"debug": true, "info": true, "warning": true, "success": true, "error": true}

// SoundConfig controls the error alert.
type SoundConfig struct {
	// Enabled plays the alert on error messages
	Enabled bool `yaml:"enabled"`

	// Backend selects the player: auto, command, beep or none
	Backend string `yaml:"backend"`

	// AlertPath is the audio file played on errors. Empty plays the bundled clip.
	AlertPath string `yaml:"alert_path"`

	// Cooldown drops alerts closer together than this (0 = no limit)
	Cooldown time.Duration `yaml:"cooldown"`

	// MaxDuration bounds a single playback
	MaxDuration time.Duration `yaml:"max_duration"`
}

// Config represents consolelog configuration options
type Config struct {
	// LogFile mirrors messages to this path (empty = no file)
	LogFile string `yaml:"log_file"`

	// LockLogFile guards appends with an advisory lock
	LockLogFile bool `yaml:"lock_log_file"`

	// Color is auto, always or never
	Color string `yaml:"color"`

	// Columns overrides terminal width detection (0 = detect)
	Columns int `yaml:"columns"`

	// Palette overrides 256-color backgrounds by severity name
	Palette map[string]int `yaml:"palette,omitempty"`

	// Sound contains alert configuration
	Sound SoundConfig `yaml:"sound"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "",
		LockLogFile: false,
		Color:       ColorAuto,
		Columns:     0,
		Sound: SoundConfig{
			Enabled:     true,
			Backend:     "auto",
			AlertPath:   "",
			Cooldown:    0,
			MaxDuration: 10 * time.Second,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML; pointers distinguish "unset" from false/zero.
	type yamlSound struct {
		Enabled     *bool  `yaml:"enabled"`
		Backend     string `yaml:"backend"`
		AlertPath   string `yaml:"alert_path"`
		Cooldown    string `yaml:"cooldown"`
		MaxDuration string `yaml:"max_duration"`
	}
	type yamlConfig struct {
		LogFile     string         `yaml:"log_file"`
		LockLogFile bool           `yaml:"lock_log_file"`
		Color       string         `yaml:"color"`
		Columns     int            `yaml:"columns"`
		Palette     map[string]int `yaml:"palette"`
		Sound       yamlSound      `yaml:"sound"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogFile != "" {
		cfg.LogFile = yamlCfg.LogFile
	}
	if yamlCfg.LockLogFile {
		cfg.LockLogFile = true
	}
	if yamlCfg.Color != "" {
		cfg.Color = strings.ToLower(yamlCfg.Color)
	}
	if yamlCfg.Columns != 0 {
		cfg.Columns = yamlCfg.Columns
	}
	if len(yamlCfg.Palette) > 0 {
		cfg.Palette = make(map[string]int, len(yamlCfg.Palette))
		for name, code := range yamlCfg.Palette {
			cfg.Palette[strings.ToLower(name)] = code
		}
	}

	if yamlCfg.Sound.Enabled != nil {
		cfg.Sound.Enabled = *yamlCfg.Sound.Enabled
	}
	if yamlCfg.Sound.Backend != "" {
		cfg.Sound.Backend = strings.ToLower(yamlCfg.Sound.Backend)
	}
	if yamlCfg.Sound.AlertPath != "" {
		cfg.Sound.AlertPath = yamlCfg.Sound.AlertPath
	}
	if yamlCfg.Sound.Cooldown != "" {
		d, err := time.ParseDuration(yamlCfg.Sound.Cooldown)
		if err != nil {
			return nil, fmt.Errorf("invalid sound.cooldown format %q: %w", yamlCfg.Sound.Cooldown, err)
		}
		cfg.Sound.Cooldown = d
	}
	if yamlCfg.Sound.MaxDuration != "" {
		d, err := time.ParseDuration(yamlCfg.Sound.MaxDuration)
		if err != nil {
			return nil, fmt.Errorf("invalid sound.max_duration format %q: %w", yamlCfg.Sound.MaxDuration, err)
		}
		cfg.Sound.MaxDuration = d
	}

	return cfg, nil
}

// ResolvePath returns explicit, or DefaultConfigFile in the working directory
// when explicit is empty. Callers resolve CONSOLELOG_CONFIG first.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return DefaultConfigFile
}

// ApplyEnv overrides settings from the environment.
// CUSTOM_LOGGER_PLAY_ERROR_SOUND enables sound when empty or "true"/"1"
// (any case) and disables it for any other value.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if path := getenv(EnvLogFile); path != "" {
		c.LogFile = path
	}

	if v, set := lookup(getenv, EnvPlaySound); set {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "true", "1":
			c.Sound.Enabled = true
		default:
			c.Sound.Enabled = false
		}
	}
}

// lookup reports a variable's value and whether it is set to anything.
// An empty value counts as unset, matching the variable's documented default.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	return v, v != ""
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logFile *string, color *string, noSound *bool) {
	if logFile != nil {
		c.LogFile = *logFile
	}
	if color != nil {
		c.Color = strings.ToLower(*color)
	}
	if noSound != nil && *noSound {
		c.Sound.Enabled = false
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if c.Columns < 0 {
		return fmt.Errorf("columns must be >= 0, got %d", c.Columns)
	}

	names := make([]string, 0, len(c.Palette))
	for name := range c.Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !validSeverities[name] {
			return fmt.Errorf("invalid palette severity %q, must be one of: debug, info, warning, success, error", name)
		}
		if code := c.Palette[name]; code < 0 || code > 255 {
			return fmt.Errorf("palette.%s must be a 256-color code (0-255), got %d", name, code)
		}
	}

	if !validBackends[c.Sound.Backend] {
		return fmt.Errorf("invalid sound.backend %q, must be one of: auto, command, beep, none", c.Sound.Backend)
	}
	if c.Sound.Cooldown < 0 {
		return fmt.Errorf("sound.cooldown must be >= 0, got %v", c.Sound.Cooldown)
	}
	if c.Sound.MaxDuration < 0 {
		return fmt.Errorf("sound.max_duration must be >= 0, got %v", c.Sound.MaxDuration)
	}

	return nil
}

// Marshal renders the configuration as YAML with durations as strings.
func (c *Config) Marshal() ([]byte, error) {
	type yamlSound struct {
		Enabled     bool   `yaml:"enabled"`
		Backend     string `yaml:"backend"`
		AlertPath   string `yaml:"alert_path"`
		Cooldown    string `yaml:"cooldown"`
		MaxDuration string `yaml:"max_duration"`
	}
	type yamlConfig struct {
		LogFile     string         `yaml:"log_file"`
		LockLogFile bool           `yaml:"lock_log_file"`
		Color       string         `yaml:"color"`
		Columns     int            `yaml:"columns"`
		Palette     map[string]int `yaml:"palette,omitempty"`
		Sound       yamlSound      `yaml:"sound"`
	}

	out := yamlConfig{
		LogFile:     c.LogFile,
		LockLogFile: c.LockLogFile,
		Color:       c.Color,
		Columns:     c.Columns,
		Palette:     c.Palette,
		Sound: yamlSound{
			Enabled:     c.Sound.Enabled,
			Backend:     c.Sound.Backend,
			AlertPath:   c.Sound.AlertPath,
			Cooldown:    c.Sound.Cooldown.String(),
			MaxDuration: c.Sound.MaxDuration.String(),
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
