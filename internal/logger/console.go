// Package logger renders human-readable, color-coded status messages.
//
// A Renderer prints one styled, timestamped line per call followed by a
// separator rule sized to the terminal. Messages can optionally be mirrored to
// an append-only file, followed by a block-digit countdown, or drawn over the
// previous message. Error messages also trigger an alert sound and a sad face.
//
// None of the severity methods return errors: file, sound and terminal
// failures degrade silently so logging never destabilizes the caller.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/harrison/consolelog/internal/sound"
)

// TimestampFormat is ISO-8601 local time with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000"

// overwriteRows is how far an overwrite moves the cursor up. It assumes the
// previous call printed one message line and one rule.
const overwriteRows = 3

// Options configures a Renderer. The zero value writes plain text to stdout.
type Options struct {
	// Out receives rendered output. Defaults to color.Output.
	Out io.Writer

	// SinkPath mirrors raw messages to this file. Empty disables the sink.
	SinkPath string

	// LockSink guards each sink append with an advisory file lock.
	LockSink bool

	// Player is called for error alerts. Defaults to sound.Noop.
	Player sound.Player

	// AlertPath is the audio file handed to Player.
	AlertPath string

	// Color forces styling on or off. Nil detects from Out.
	Color *bool

	// Columns overrides terminal width detection when positive.
	Columns int

	// Palette overrides background color codes per severity.
	Palette map[Severity]int

	// Clock and Sleep replace time.Now and time.Sleep.
	Clock func() time.Time
	Sleep func(time.Duration)

	// Diagnostics receives internal debug output about swallowed failures.
	Diagnostics io.Writer
}

// Renderer writes styled messages for the five severities.
type Renderer struct {
	out       io.Writer
	palette   Palette
	columns   int
	sink      *FileSink
	player    sound.Player
	alertPath string
	now       func() time.Time
	sleep     func(time.Duration)
	diag      *charmlog.Logger
	mu        sync.Mutex
}

// New creates a Renderer. Terminal width is measured once here.
func New(opts Options) *Renderer {
	out := opts.Out
	if out == nil {
		out = color.Output
	}

	useColor := ColorEnabled(out)
	if opts.Color != nil {
		useColor = *opts.Color
	}

	columns := opts.Columns
	if columns <= 0 {
		columns = columnsFor(out)
	}

	player := opts.Player
	if player == nil {
		player = sound.Noop{}
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	diagOut := opts.Diagnostics
	if diagOut == nil {
		diagOut = io.Discard
	}
	diag := charmlog.NewWithOptions(diagOut, charmlog.Options{
		Prefix: "consolelog",
		Level:  charmlog.DebugLevel,
	}).With("id", uuid.NewString()[:8])

	r := &Renderer{
		out:       out,
		palette:   NewPalette(useColor, opts.Palette),
		columns:   columns,
		player:    player,
		alertPath: opts.AlertPath,
		now:       now,
		sleep:     sleep,
		diag:      diag,
	}
	if opts.SinkPath != "" {
		r.sink = NewFileSink(opts.SinkPath, opts.LockSink)
	}

	diag.Debug("renderer ready", "columns", columns, "color", useColor, "sink", opts.SinkPath)
	return r
}

// Columns returns the terminal width captured at construction.
func (r *Renderer) Columns() int {
	return r.columns
}

// emitConfig holds per-call options.
type emitConfig struct {
	countdown int
	overwrite bool
	noSound   bool
}

// EmitOption adjusts a single severity call.
type EmitOption func(*emitConfig)

// WithCountdown shows a block-digit countdown of the given seconds after the
// message. The call blocks for the full duration. Values <= 0 are ignored.
func WithCountdown(seconds int) EmitOption {
	return func(c *emitConfig) { c.countdown = seconds }
}

// WithOverwrite draws the message over the previous one instead of below it.
// It moves up exactly three rows, which assumes the previous call printed a
// single message line and its rule. Ignored for Error.
func WithOverwrite() EmitOption {
	return func(c *emitConfig) { c.overwrite = true }
}

// WithoutSound suppresses the alert sound of an Error call.
func WithoutSound() EmitOption {
	return func(c *emitConfig) { c.noSound = true }
}

// Debug prints a debug message.
func (r *Renderer) Debug(msg string, opts ...EmitOption) {
	r.Emit(Debug, msg, opts...)
}

// Info prints an info message.
func (r *Renderer) Info(msg string, opts ...EmitOption) {
	r.Emit(Info, msg, opts...)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string, opts ...EmitOption) {
	r.Emit(Warning, msg, opts...)
}

// Success prints a success message.
func (r *Renderer) Success(msg string, opts ...EmitOption) {
	r.Emit(Success, msg, opts...)
}

// Error prints an error message, plays the alert sound unless WithoutSound is
// given, and draws the sad face.
func (r *Renderer) Error(msg string, opts ...EmitOption) {
	r.Emit(Error, msg, opts...)
}

// Emit prints msg with the style of sev.
func (r *Renderer) Emit(sev Severity, msg string, opts ...EmitOption) {
	var cfg emitConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if sev == Error {
		cfg.overwrite = false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	style := r.palette.Style(sev)
	r.printMessage(style, msg, cfg.overwrite, true)
	if cfg.countdown > 0 {
		r.countdown(cfg.countdown, style)
	}
	r.rule()

	if sev != Error {
		return
	}

	if !cfg.noSound {
		r.playAlert()
	}
	r.printArt(SadFace, style)
	r.rule()
}

// Rule prints a plain separator line.
func (r *Renderer) Rule() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rule()
}

// Close waits, within the player's bound, for an alert still playing inside
// this process, then releases the file sink.
func (r *Renderer) Close() error {
	sound.Drain(r.player)

	if r.sink == nil {
		return nil
	}
	return r.sink.Close()
}

// printMessage mirrors msg to the sink and writes the decorated line.
func (r *Renderer) printMessage(style Style, msg string, overwrite, timestamped bool) {
	r.mirror(msg)

	line := r.decorate(style, msg, timestamped)
	if overwrite {
		r.write(strings.Repeat(cursorPrevLine, overwriteRows) + "\n" + clearLine + line + "\n")
		return
	}
	r.write(line + "\n")
}

// decorate composes "<ts> <msg>" with both parts styled. Decorative lines
// and untimestamped lines get only the styled message.
func (r *Renderer) decorate(style Style, msg string, timestamped bool) string {
	if !timestamped || isDecorative(msg) {
		return style.Wrap(msg)
	}
	return style.Wrap(r.now().Format(TimestampFormat)) + " " + style.Wrap(msg)
}

// printArt renders each row of art through the message path without timestamps.
func (r *Renderer) printArt(art FixedArt, style Style) {
	for _, row := range art.Rows {
		r.printMessage(style, row, false, false)
	}
}

// rule prints columns-1 dashes.
func (r *Renderer) rule() {
	width := r.columns - 1
	if width < 0 {
		width = 0
	}
	r.write(strings.Repeat("-", width) + "\n")
}

// mirror appends msg to the sink, swallowing failures.
func (r *Renderer) mirror(msg string) {
	if r.sink == nil {
		return
	}
	if err := r.sink.Append(msg); err != nil {
		r.diag.Debug("file sink unavailable", "path", r.sink.Path(), "err", err)
	}
}

// playAlert hands the alert to the sound player, recovering from any panic.
func (r *Renderer) playAlert() {
	defer func() {
		if rec := recover(); rec != nil {
			r.diag.Debug("alert sound failed", "panic", fmt.Sprint(rec))
		}
	}()
	r.player.Play(r.alertPath)
}

// write sends s to the output, ignoring errors.
func (r *Renderer) write(s string) {
	if _, err := io.WriteString(r.out, s); err != nil {
		r.diag.Debug("output write failed", "err", err)
	}
}
