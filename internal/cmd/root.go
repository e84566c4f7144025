package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/consolelog/internal/config"
	"github.com/harrison/consolelog/internal/sound"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// runtimeDeps holds the collaborators a command needs beyond its flags.
// Tests replace them to observe alerts and skip real sleeps.
type runtimeDeps struct {
	newPlayer func(cfg config.SoundConfig) sound.Player
	sleep     func(time.Duration)
	getenv    func(string) string
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logFile    string
	color      string
	noSound    bool
	verbose    bool
}

// NewRootCommand creates and returns the root cobra command for consolelog
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultDeps())
}

func newRootCommand(deps *runtimeDeps) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "consolelog",
		Short: "Color-coded terminal status messages with countdowns and alerts",
		Long: `consolelog prints timestamped, color-coded status messages for five
severities (debug, info, warning, success, error), each followed by a
separator sized to the terminal.

Messages can be mirrored to an append-only log file, followed by a
block-digit countdown, or drawn over the previous message. Errors also
play an alert sound and draw a sad face.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $CONSOLELOG_CONFIG or ./consolelog.yaml)")
	pf.StringVar(&flags.logFile, "log-file", "", "mirror messages to this file (overrides $LOG_FILE_PATH)")
	pf.StringVar(&flags.color, "color", "", "color output: auto, always, never")
	pf.BoolVar(&flags.noSound, "no-sound", false, "never play the error alert")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "print internal diagnostics to stderr")

	for _, sev := range []string{"debug", "info", "warning", "success"} {
		cmd.AddCommand(NewSeverityCommand(sev, flags, deps))
	}
	cmd.AddCommand(NewErrorCommand(flags, deps))
	cmd.AddCommand(NewCountdownCommand(flags, deps))
	cmd.AddCommand(NewRuleCommand(flags, deps))
	cmd.AddCommand(NewDemoCommand(flags, deps))
	cmd.AddCommand(NewConfigCommand(flags, deps))

	return cmd
}
