package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/consolelog/internal/config"
	"github.com/harrison/consolelog/internal/display"
	"github.com/harrison/consolelog/internal/logger"
	"github.com/harrison/consolelog/internal/sound"
)

func defaultDeps() *runtimeDeps {
	return &runtimeDeps{
		newPlayer: func(cfg config.SoundConfig) sound.Player {
			return sound.Select(cfg.Backend, sound.Options{
				MaxDuration: cfg.MaxDuration,
				Cooldown:    cfg.Cooldown,
			})
		},
		sleep:  time.Sleep,
		getenv: os.Getenv,
	}
}

// loadConfig resolves the effective configuration: file, then environment,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command, flags *rootFlags, deps *runtimeDeps) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		if env := deps.getenv(config.EnvConfig); env != "" {
			path = env
		}
	}
	path = config.ResolvePath(path)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.ApplyEnv(deps.getenv)

	var logFile, color *string
	var noSound *bool
	if cmd.Flags().Changed("log-file") {
		logFile = &flags.logFile
	}
	if cmd.Flags().Changed("color") {
		color = &flags.color
	}
	if cmd.Flags().Changed("no-sound") {
		noSound = &flags.noSound
	}
	cfg.MergeWithFlags(logFile, color, noSound)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newRenderer builds a Renderer writing to the command's output. A sound
// player is only set up when alerts is true, so commands that never print
// errors do not open an audio device.
func newRenderer(cmd *cobra.Command, flags *rootFlags, deps *runtimeDeps, alerts bool) (*logger.Renderer, error) {
	cfg, err := loadConfig(cmd, flags, deps)
	if err != nil {
		return nil, err
	}
	return rendererFromConfig(cmd, cfg, flags, deps, alerts), nil
}

func rendererFromConfig(cmd *cobra.Command, cfg *config.Config, flags *rootFlags, deps *runtimeDeps, alerts bool) *logger.Renderer {
	opts := logger.Options{
		Out:       cmd.OutOrStdout(),
		SinkPath:  cfg.LogFile,
		LockSink:  cfg.LockLogFile,
		AlertPath: cfg.Sound.AlertPath,
		Columns:   cfg.Columns,
		Sleep:     deps.sleep,
	}

	switch cfg.Color {
	case config.ColorAlways:
		on := true
		opts.Color = &on
	case config.ColorNever:
		off := false
		opts.Color = &off
	}

	if len(cfg.Palette) > 0 {
		opts.Palette = make(map[logger.Severity]int, len(cfg.Palette))
		for name, code := range cfg.Palette {
			// Names were checked by Validate.
			sev, _ := logger.ParseSeverity(name)
			opts.Palette[sev] = code
		}
	}

	if alerts && cfg.Sound.Enabled {
		opts.Player = deps.newPlayer(cfg.Sound)
		if !sound.Available(opts.Player) && cfg.Sound.Backend != sound.BackendNone {
			warnNoPlayer(cmd.ErrOrStderr(), cfg.Sound.Backend)
		}
	}

	if flags.verbose {
		opts.Diagnostics = cmd.ErrOrStderr()
	}

	return logger.New(opts)
}

func warnNoPlayer(out io.Writer, backend string) {
	display.Warning{
		Title:      "Alert sound unavailable",
		Message:    fmt.Sprintf("Sound backend %q found no way to play audio", backend),
		Details:    []string{"mpg123", "ffplay", "paplay", "afplay", "aplay"},
		Suggestion: "Install one of the players above, or set sound.backend: none",
	}.Display(out)
}
