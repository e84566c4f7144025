package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoPlayer is returned when no supported audio command is installed.
var ErrNoPlayer = errors.New("no audio player found in PATH")

// ErrUnsupportedFormat is reported when no installed command can play the file.
var ErrUnsupportedFormat = errors.New("no installed audio player supports this format")

// commandBackend describes an external audio player invocation.
type commandBackend struct {
	Name string
	Args []string
	// Formats lists playable file extensions; empty means any.
	Formats []string
}

// commandBackends is searched in order; the first installed one that can
// play the file wins.
var commandBackends = []commandBackend{
	{Name: "mpg123", Args: []string{"-q"}, Formats: []string{".mp3"}},
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{Name: "paplay", Formats: []string{".wav", ".ogg", ".flac"}},
	{Name: "afplay"},
	{Name: "aplay", Args: []string{"-q"}, Formats: []string{".wav"}},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// installedCommand is a backend resolved to an executable.
type installedCommand struct {
	name    string
	path    string
	args    []string
	formats []string
}

func (c installedCommand) plays(file string) bool {
	if len(c.formats) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(file))
	for _, f := range c.formats {
		if f == ext {
			return true
		}
	}
	return false
}

// CommandPlayer plays files by spawning an installed audio command.
// The child is started before Play returns, so it keeps playing after this
// process exits.
type CommandPlayer struct {
	commands    []installedCommand
	maxDuration time.Duration

	started func(file string, proc *os.Process)
	done    func(error)
}

// DetectCommandPlayer finds every installed player, in priority order
// mpg123, ffplay, paplay, afplay, aplay.
func DetectCommandPlayer(maxDuration time.Duration) (*CommandPlayer, error) {
	var found []installedCommand
	for _, b := range commandBackends {
		path, err := lookPath(b.Name)
		if err != nil {
			continue
		}
		found = append(found, installedCommand{name: b.Name, path: path, args: b.Args, formats: b.Formats})
	}
	if len(found) == 0 {
		return nil, ErrNoPlayer
	}

	p := NewCommandPlayer(found[0].name, found[0].path, maxDuration, found[0].args...)
	p.commands = found
	return p, nil
}

// NewCommandPlayer creates a player that runs "path args... <file>" for any
// file format.
func NewCommandPlayer(name, path string, maxDuration time.Duration, args ...string) *CommandPlayer {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	return &CommandPlayer{
		commands:    []installedCommand{{name: name, path: path, args: args}},
		maxDuration: maxDuration,
	}
}

// Name returns the preferred command name.
func (p *CommandPlayer) Name() string {
	return p.commands[0].name
}

// Play spawns the player and returns once the child is running. A missing
// or unplayable file is replaced by the bundled alert. The child is killed
// after maxDuration if this process is still alive.
func (p *CommandPlayer) Play(path string) {
	file, c, err := p.resolve(path)
	if err != nil {
		p.finish(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.maxDuration)
	args := append(append([]string(nil), c.args...), file)
	cmd := exec.CommandContext(ctx, c.path, args...)
	// Stdout/Stderr left nil: output goes to the null device.
	if err := cmd.Start(); err != nil {
		cancel()
		p.finish(fmt.Errorf("failed to start %s: %w", c.name, err))
		return
	}
	if p.started != nil {
		p.started(file, cmd.Process)
	}

	go func() {
		defer cancel()
		p.finish(cmd.Wait())
	}()
}

// resolve picks the file to play and the command that plays it.
func (p *CommandPlayer) resolve(path string) (string, installedCommand, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if c, ok := p.commandFor(path); ok {
				return path, c, nil
			}
		}
	}

	bundled, err := BundledAlertPath()
	if err != nil {
		return "", installedCommand{}, err
	}
	if c, ok := p.commandFor(bundled); ok {
		return bundled, c, nil
	}
	return "", installedCommand{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(bundled))
}

func (p *CommandPlayer) commandFor(file string) (installedCommand, bool) {
	for _, c := range p.commands {
		if c.plays(file) {
			return c, true
		}
	}
	return installedCommand{}, false
}

func (p *CommandPlayer) finish(err error) {
	if p.done != nil {
		p.done(err)
	}
}
