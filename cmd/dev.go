package cmd

import (
	"context"
	"io"
	"path/filepath"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/logging"
	"github.com/grovetools/docnav/pkg/site"
	"github.com/grovetools/docnav/pkg/watch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// devLoop rebuilds the site whenever its sources or its config change.
// Rebuilds run on the watcher goroutine, so they never overlap.
type devLoop struct {
	cmd    *cobra.Command
	flags  *buildFlags
	cfg    *config.Config
	path   string
	opts   site.Options
	out    io.Writer
	logger *logrus.Entry
	w      *watch.Watcher

	// onBuilt runs after every successful rebuild.
	onBuilt func()
}

func newDevLoop(cmd *cobra.Command, flags *buildFlags, opts site.Options) (*devLoop, error) {
	cfg, path, err := flags.load(cmd)
	if err != nil {
		return nil, err
	}
	return &devLoop{
		cmd:    cmd,
		flags:  flags,
		cfg:    cfg,
		path:   path,
		opts:   opts,
		out:    cmd.OutOrStdout(),
		logger: cli.GetLogger("dev"),
	}, nil
}

// watcher builds once and returns a watcher for the source tree.
func (d *devLoop) watcher(ctx context.Context) (*watch.Watcher, error) {
	buildOnce(ctx, d.cfg, d.opts, d.out)

	var files []string
	if d.path != "" {
		files = append(files, d.path)
	}
	w, err := watch.New(d.cfg.Build.Source, watch.Options{
		Ignore:   []string{d.cfg.Build.Output},
		Files:    files,
		OnChange: func(paths []string) { d.rebuild(ctx, paths) },
		Logger:   cli.GetLogger("watch"),
	})
	if err != nil {
		return nil, err
	}
	d.w = w
	return w, nil
}

func (d *devLoop) rebuild(ctx context.Context, paths []string) {
	if d.path != "" && containsPath(paths, d.path) {
		cfg, _, err := d.flags.load(d.cmd)
		if err != nil {
			cli.NewErrorHandler(false).Handle(err)
			return
		}
		if filepath.Clean(cfg.Build.Source) != filepath.Clean(d.cfg.Build.Source) {
			d.logger.Warn("build.source changed; restart to watch the new directory")
		}
		// A new output directory inside the source tree would retrigger
		// every rebuild.
		if d.w != nil && filepath.Clean(cfg.Build.Output) != filepath.Clean(d.cfg.Build.Output) {
			d.w.Ignore(cfg.Build.Output)
		}
		d.cfg = cfg
		d.logger.WithField("path", d.path).Info("Reloaded configuration")
	}

	opts := d.opts
	opts.Clean = false
	logging.NewPrettyLogger().WithWriter(d.out).Blank()
	if buildOnce(ctx, d.cfg, opts, d.out) && d.onBuilt != nil {
		d.onBuilt()
	}
}

func containsPath(paths []string, target string) bool {
	abs, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	for _, p := range paths {
		if p == abs {
			return true
		}
	}
	return false
}
