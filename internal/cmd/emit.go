package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/consolelog/internal/logger"
)

// NewSeverityCommand creates the subcommand printing a message at severity sev.
// Error has its own command because it never overwrites.
func NewSeverityCommand(sev string, flags *rootFlags, deps *runtimeDeps) *cobra.Command {
	var countdown int
	var overwrite bool

	cmd := &cobra.Command{
		Use:   sev + " [message...]",
		Short: fmt.Sprintf("Print a %s message", sev),
		Long: fmt.Sprintf(`Print a timestamped %s message followed by a separator rule.

  consolelog %s "Processing item 1"
  consolelog %s "Retrying shortly" --countdown 5
  consolelog %s "Updated status" --overwrite`, sev, sev, sev, sev),
		RunE: func(cmd *cobra.Command, args []string) error {
			severity, err := logger.ParseSeverity(sev)
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, flags, deps, severity == logger.Error)
			if err != nil {
				return err
			}
			defer r.Close()

			var opts []logger.EmitOption
			if countdown > 0 {
				opts = append(opts, logger.WithCountdown(countdown))
			}
			if overwrite {
				opts = append(opts, logger.WithOverwrite())
			}
			r.Emit(severity, strings.Join(args, " "), opts...)
			return nil
		},
	}

	cmd.Flags().IntVarP(&countdown, "countdown", "c", 0, "seconds of block-digit countdown after the message")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "draw over the previous message")

	return cmd
}

// NewErrorCommand creates the error subcommand.
func NewErrorCommand(flags *rootFlags, deps *runtimeDeps) *cobra.Command {
	var countdown int

	cmd := &cobra.Command{
		Use:   "error [message...]",
		Short: "Print an error message with an alert sound and sad face",
		Long: `Print a timestamped error message, play the alert sound, and draw a sad face.

  consolelog error "disk full"
  consolelog error "disk full" --no-sound`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRenderer(cmd, flags, deps, true)
			if err != nil {
				return err
			}
			defer r.Close()

			var opts []logger.EmitOption
			if countdown > 0 {
				opts = append(opts, logger.WithCountdown(countdown))
			}
			r.Error(strings.Join(args, " "), opts...)
			return nil
		},
	}

	cmd.Flags().IntVarP(&countdown, "countdown", "c", 0, "seconds of block-digit countdown after the message")

	return cmd
}

// NewCountdownCommand creates the countdown subcommand.
func NewCountdownCommand(flags *rootFlags, deps *runtimeDeps) *cobra.Command {
	var severity string

	cmd := &cobra.Command{
		Use:   "countdown <seconds> [message...]",
		Short: "Print a message followed by a block-digit countdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil || seconds < 0 {
				return fmt.Errorf("invalid countdown %q: must be a non-negative integer", args[0])
			}

			sev, err := logger.ParseSeverity(severity)
			if err != nil {
				return err
			}

			msg := strings.Join(args[1:], " ")
			if msg == "" {
				msg = fmt.Sprintf("Waiting %d seconds", seconds)
			}

			r, err := newRenderer(cmd, flags, deps, sev == logger.Error)
			if err != nil {
				return err
			}
			defer r.Close()

			r.Emit(sev, msg, logger.WithCountdown(seconds))
			return nil
		},
	}

	cmd.Flags().StringVarP(&severity, "severity", "s", "info", "severity of the message")

	return cmd
}

// NewRuleCommand creates the rule subcommand.
func NewRuleCommand(flags *rootFlags, deps *runtimeDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "rule",
		Short: "Print a separator line as wide as the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRenderer(cmd, flags, deps, false)
			if err != nil {
				return err
			}
			defer r.Close()

			r.Rule()
			return nil
		},
	}
}
