package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/pkg/site"
	"github.com/grovetools/docnav/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLoop runs a command that creates a devLoop from the given args.
func newTestLoop(t *testing.T, args ...string) *devLoop {
	t.Helper()

	var (
		flags buildFlags
		loop  *devLoop
	)
	root := cli.NewStandardCommand("docnav", "")
	dev := &cobra.Command{Use: "dev", RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		loop, err = newDevLoop(cmd, &flags, site.Options{})
		return err
	}}
	flags.register(dev)
	root.AddCommand(dev)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"dev"}, args...))
	require.NoError(t, root.Execute())
	return loop
}

func TestDevLoopReloadIgnoresNewOutput(t *testing.T) {
	dir, cfgPath := writeProject(t)
	loop := newTestLoop(t, "--config", cfgPath)

	builds := make(chan struct{}, 16)
	loop.onBuilt = func() { builds <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	w, err := loop.watcher(ctx)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "_site", "index.html"))

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	moved := strings.Replace(projectConfig, "output: _site", "output: public", 1)
	require.NoError(t, os.WriteFile(cfgPath, []byte(moved), 0644))

	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatal("config change did not trigger a rebuild")
	}
	assert.Equal(t, filepath.Join(dir, "public"), loop.cfg.Build.Output)
	assert.Contains(t, testutil.ReadFile(t, dir, "public/index.html"), "<h1>Docs</h1>")

	// Writing the new output must not trigger another rebuild.
	select {
	case <-builds:
		t.Fatal("rebuild was triggered by its own output")
	case <-time.After(time.Second):
	}
}

func TestDevLoopKeepsConfigOnReloadError(t *testing.T) {
	dir, cfgPath := writeProject(t)
	loop := newTestLoop(t, "--config", cfgPath)
	before := loop.cfg

	require.NoError(t, os.WriteFile(cfgPath, []byte("site: [unclosed"), 0644))
	loop.rebuild(context.Background(), []string{cfgPath})

	assert.Same(t, before, loop.cfg)
	assert.NoDirExists(t, filepath.Join(dir, "_site"))
}

func TestContainsPath(t *testing.T) {
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	abs := filepath.Join(dir, "docnav.yml")
	assert.True(t, containsPath([]string{filepath.Join(dir, "index.html"), abs}, "docnav.yml"))
	assert.True(t, containsPath([]string{abs}, abs))
	assert.False(t, containsPath([]string{filepath.Join(dir, "index.html")}, "docnav.yml"))
	assert.False(t, containsPath(nil, abs))
}
