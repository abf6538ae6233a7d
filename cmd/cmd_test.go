package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Cobra writes usage and errors to the configured streams.
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "version", "config"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestConfigSetAndGet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := runCommand(t, "config", "set", "url", "https://taiga.internal.example.com")
	require.NoError(t, err)

	configPath := filepath.Join(os.Getenv("HOME"), ".config", "taiga-mcp", "config.yaml")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "taiga.internal.example.com")
}

func TestConfigSetUnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runCommand(t, "config", "set", "bogus", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestConfigSetLocal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := runCommand(t, "config", "set", "--local", "max_pages", "30")
	require.NoError(t, err)

	data, err := os.ReadFile(".taiga-mcp.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_pages")

	// The local flag is sticky on the package-level command; reset it.
	configSetLocal = false
}

func TestConfigGetUnknownKey(t *testing.T) {
	_, err := runCommand(t, "config", "get", "bogus")
	require.Error(t, err)
}

func TestConfigUnset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := runCommand(t, "config", "set", "log_level", "debug")
	require.NoError(t, err)

	_, err = runCommand(t, "config", "unset", "log_level")
	require.NoError(t, err)

	configPath := filepath.Join(os.Getenv("HOME"), ".config", "taiga-mcp", "config.yaml")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "log_level")
}
