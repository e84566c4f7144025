package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/consolelog/internal/config"
	"github.com/harrison/consolelog/internal/sound"
)

// testHarness runs the root command against buffers with a recording player,
// instant sleeps, and an empty environment unless env is given.
type testHarness struct {
	recorder *sound.Recorder
	// player replaces recorder when set.
	player   sound.Player
	builds   int
	sleeps   []time.Duration
	env      map[string]string
	dir      string
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	return &testHarness{
		recorder: &sound.Recorder{},
		env:      map[string]string{},
		dir:      t.TempDir(),
	}
}

func (h *testHarness) deps() *runtimeDeps {
	return &runtimeDeps{
		newPlayer: func(config.SoundConfig) sound.Player {
			h.builds++
			if h.player != nil {
				return h.player
			}
			return h.recorder
		},
		sleep:     func(d time.Duration) { h.sleeps = append(h.sleeps, d) },
		getenv:    func(key string) string { return h.env[key] },
	}
}

// run executes args with a nonexistent config file so defaults apply.
func (h *testHarness) run(args ...string) (string, string, error) {
	root := newRootCommand(h.deps())

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	full := append([]string{}, args...)
	full = append(full, "--config", filepath.Join(h.dir, "missing.yaml"))
	root.SetArgs(full)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()

	want := []string{"debug", "info", "warning", "success", "error", "countdown", "rule", "demo", "config"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"config", "log-file", "color", "no-sound", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag --%s", name)
	}
	assert.Equal(t, "v", root.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCommandVersion(t *testing.T) {
	h := newTestHarness(t)

	stdout, _, err := h.run("--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, Version)
}

func TestRootCommandHelp(t *testing.T) {
	h := newTestHarness(t)

	stdout, _, err := h.run("--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "five")
	assert.Contains(t, stdout, "countdown")
}

func TestRootCommandUnknownSubcommand(t *testing.T) {
	h := newTestHarness(t)

	_, _, err := h.run("shout", "hello")
	assert.Error(t, err)
}
