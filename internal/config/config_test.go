package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakvm/stak/internal/config"
)

func TestDefaultMatchesLanguageLimits(t *testing.T) {
	c := config.Default()
	require.Equal(t, 2048, c.StackDepth)
	require.Equal(t, 16, c.EnvDepth)
	require.Equal(t, "> ", c.Prompt)
	require.Equal(t, ".. ", c.ContinuationPrompt)
	require.True(t, c.Color)
}

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stak.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack_depth: 64\nprompt: \"stak> \"\n"), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, c.StackDepth)
	require.Equal(t, "stak> ", c.Prompt)
	require.Equal(t, 16, c.EnvDepth)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stak.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack_depth: 64\n"), 0o600))

	t.Setenv("STAK_STACK_DEPTH", "128")
	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 128, c.StackDepth)
}

func TestLoadRejectsNonPositiveDepth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stak.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack_depth: 0\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
