package replcmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakvm/stak/internal/config"
	"github.com/stakvm/stak/internal/replcmd"
)

func TestRunFileExecutesScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.stak")
	require.NoError(t, os.WriteFile(path, []byte(`"hello" print`), 0o600))

	var out bytes.Buffer
	ip := replcmd.New(config.Default(), &out, strings.NewReader(""))
	require.NoError(t, ip.RunFile(path))
	require.Equal(t, "hello\n", out.String())
}

func TestRunFileStopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.stak")
	require.NoError(t, os.WriteFile(path, []byte("1 0 /\n\"unreached\" print"), 0o600))

	var out bytes.Buffer
	ip := replcmd.New(config.Default(), &out, strings.NewReader(""))
	err := ip.RunFile(path)
	require.Error(t, err)
	require.Empty(t, out.String())
}

func TestReplQuitExitsLoop(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("1 2 +\nquit\n")
	ip := replcmd.New(config.Default(), &out, in)

	ip.Repl(context.Background(), &out)
	require.Contains(t, out.String(), "> ")
	require.NotContains(t, out.String(), "ERROR")
}

func TestReplEOFExitsLoop(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("1 2 +\n")
	ip := replcmd.New(config.Default(), &out, in)

	done := make(chan struct{})
	go func() {
		ip.Repl(context.Background(), &out)
		close(done)
	}()
	<-done
}

func TestRunFileHonorsConfiguredStackDepth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.stak")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3"), 0o600))

	cfg := config.Default()
	cfg.StackDepth = 2
	var out bytes.Buffer
	ip := replcmd.New(cfg, &out, strings.NewReader(""))
	err := ip.RunFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds capacity 2")
}

func TestReplReportsRuntimeErrors(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("1 0 /\nquit\n")
	ip := replcmd.New(config.Default(), &out, in)

	ip.Repl(context.Background(), &out)
	require.Contains(t, out.String(), "ERROR")
}
