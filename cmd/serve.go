package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/internal/serve"
	"github.com/grovetools/docnav/logging"
	"github.com/grovetools/docnav/pkg/site"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewServeCmd() *cobra.Command {
	var (
		flags        buildFlags
		addr         string
		noLiveReload bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build, watch and serve the site locally",
		Long: `Build the site, serve build.output over HTTP and rebuild on change.
With live reload on, every page gets a small script that reloads the
browser after each rebuild.

Examples:
  docnav serve
  docnav serve --addr 127.0.0.1:4000 --no-live-reload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loop, err := newDevLoop(cmd, &flags, site.Options{})
			if err != nil {
				return err
			}

			live := loop.cfg.LiveReloadEnabled() && !noLiveReload
			if live {
				loop.opts.Script = serve.LiveReloadScript
			}
			if addr == "" {
				addr = loop.cfg.Serve.Addr
			}

			srv := serve.New(loop.cfg.Build.Output, cli.GetLogger("serve"))
			if err := srv.Listen(addr); err != nil {
				return err
			}
			if live {
				loop.onBuilt = func() { srv.Reload() }
			}

			w, err := loop.watcher(ctx)
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Path("Serving", "http://"+srv.Addr().String()+"/")

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Serve(gctx) })
			g.Go(func() error { return w.Run(gctx) })
			return g.Wait()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: serve.addr)")
	cmd.Flags().BoolVar(&noLiveReload, "no-live-reload", false, "Do not inject the live reload script")
	return cmd
}
