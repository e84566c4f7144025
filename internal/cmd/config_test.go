package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/consolelog/internal/config"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	h := newTestHarness(t)
	path := filepath.Join(h.dir, "consolelog.yaml")

	stdout, _, err := h.run("config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	h := newTestHarness(t)
	path := filepath.Join(h.dir, "consolelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 40\n"), 0644))

	_, _, err := h.run("config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, _ := os.ReadFile(path)
	assert.Equal(t, "columns: 40\n", string(data))

	_, _, err = h.run("config", "init", path, "--force")
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.NotEqual(t, "columns: 40\n", string(data))
}

func TestConfigShowAppliesOverrides(t *testing.T) {
	h := newTestHarness(t)
	h.env[config.EnvLogFile] = "/var/log/from-env.log"

	stdout, _, err := h.run("config", "show", "--color", "never", "--no-sound")
	require.NoError(t, err)

	assert.Contains(t, stdout, "/var/log/from-env.log")
	assert.Contains(t, stdout, "color: never")
	assert.Contains(t, stdout, "enabled: false")
}

func TestConfigFileIsRead(t *testing.T) {
	h := newTestHarness(t)
	path := filepath.Join(h.dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 21\ncolor: never\n"), 0644))

	root := newRootCommand(h.deps())
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetArgs([]string{"rule", "--config", path})
	require.NoError(t, root.Execute())

	assert.Equal(t, "--------------------\n", stdout.String())
}

func TestConfigFromEnvPath(t *testing.T) {
	h := newTestHarness(t)
	path := filepath.Join(h.dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 6\n"), 0644))
	h.env[config.EnvConfig] = path

	root := newRootCommand(h.deps())
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"rule"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "-----\n", stdout.String())
}

func TestConfigEnvReadThroughInjectedLookup(t *testing.T) {
	h := newTestHarness(t)
	path := filepath.Join(h.dir, "process-env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 6\n"), 0644))

	// Only the injected lookup counts; the process environment is ignored.
	t.Setenv(config.EnvConfig, path)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(h.dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	root := newRootCommand(h.deps())
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"rule"})
	require.NoError(t, root.Execute())

	assert.Equal(t, strings.Repeat("-", 99)+"\n", stdout.String())
}

func TestMalformedConfigFails(t *testing.T) {
	h := newTestHarness(t)
	path := filepath.Join(h.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [\n"), 0644))

	root := newRootCommand(h.deps())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"info", "x", "--config", path})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
