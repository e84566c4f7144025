package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/consolelog/internal/logger"
)

// NewDemoCommand creates the demo subcommand, a tour of every output style.
func NewDemoCommand(flags *rootFlags, deps *runtimeDeps) *cobra.Command {
	var fast bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show every severity, a countdown, an overwrite, and both error variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, deps)
			if err != nil {
				return err
			}

			// --fast makes every pause, countdown ticks included, instant.
			sleep := deps.sleep
			if fast {
				sleep = func(time.Duration) {}
			}
			demoDeps := *deps
			demoDeps.sleep = sleep

			r := rendererFromConfig(cmd, cfg, flags, &demoDeps, true)
			defer r.Close()

			runDemo(r, sleep)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fast, "fast", false, "skip pauses between steps")

	return cmd
}

// runDemo walks through the renderer's features in a fixed order.
func runDemo(r *logger.Renderer, sleep func(time.Duration)) {
	pause := func() { sleep(time.Second) }

	r.Info("This is an info message")
	pause()
	r.Debug("This is a debug message")
	pause()
	r.Warning("This is a warning message")
	pause()
	r.Success("This is a success message")
	pause()
	r.Error("This is an error message")
	pause()

	r.Info("This message will have a 3 second countdown", logger.WithCountdown(3))

	r.Info("This message will be overwritten in 2 seconds")
	sleep(2 * time.Second)
	r.Info("This message overwrites the previous one", logger.WithOverwrite())

	const items = 3
	bar := logger.NewProgressBar(items, 10)
	for i := 1; i <= items; i++ {
		bar.Increment()
		r.Info(fmt.Sprintf("Processing item %d %s", i, bar.Render()))
		pause()
	}

	r.Error("This error message should play a sound")
	r.Error("This error message with no sound", logger.WithoutSound())
}
