package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/docnav/pkg/site"
	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	var (
		flags buildFlags
		clean bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever a page or the config changes",
		Long: `Build the site, then watch build.source and the config file and
rebuild after each burst of changes. Stop with Ctrl-C.

Examples:
  docnav watch
  docnav watch --preset pages --clean`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loop, err := newDevLoop(cmd, &flags, site.Options{Clean: clean})
			if err != nil {
				return err
			}
			w, err := loop.watcher(ctx)
			if err != nil {
				return err
			}
			loop.logger.WithField("source", loop.cfg.Build.Source).Info("Watching for changes")
			return w.Run(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output directory before the first build")
	return cmd
}
