package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/logging"
	"github.com/grovetools/docnav/pkg/site"
	"github.com/grovetools/docnav/util/pathutil"
	"github.com/spf13/cobra"
)

// buildFlags override the build section of the config file.
type buildFlags struct {
	site   siteFlags
	source string
	output string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	f.site.register(cmd)
	cmd.Flags().StringVar(&f.source, "source", "", "Directory holding the source pages")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Directory the rendered site is written to")
}

func (f *buildFlags) load(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, path, err := f.site.loadSite(cmd)
	if err != nil {
		return nil, "", err
	}
	if f.source != "" {
		cfg.Build.Source = pathutil.Expand(f.source)
	}
	if f.output != "" {
		cfg.Build.Output = pathutil.Expand(f.output)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func NewBuildCmd() *cobra.Command {
	var (
		flags  buildFlags
		dryRun bool
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the sidebar into every page of the site",
		Long: `Render the sidebar into every page matching build.pages under
build.source and write the result to build.output. Other files are copied
unchanged. The build stops at the first page that cannot be rendered.

Examples:
  # Build with the project configuration
  docnav build

  # Preview what would be written
  docnav build --dry-run

  # Rebuild from scratch for GitHub Pages
  docnav build --preset pages --clean`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(cmd)
			if err != nil {
				return err
			}

			builder := site.NewBuilder(cfg)
			builder.Logger = cli.GetLogger("build")
			report, err := builder.Build(cmd.Context(), site.Options{DryRun: dryRun, Clean: clean})
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printReport(cmd.OutOrStdout(), report, cli.GetOptions(cmd).Verbose)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without writing")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output directory first")
	return cmd
}

func printReport(w io.Writer, r *site.Report, verbose bool) {
	pretty := logging.NewPrettyLogger().WithWriter(w)

	if r.DryRun || verbose {
		for _, p := range r.Pages {
			pretty.Item("render", p)
		}
		for _, a := range r.Assets {
			pretty.Item("copy  ", a)
		}
		for _, s := range r.Skipped {
			pretty.Item("skip  ", s)
		}
		pretty.Divider()
	}

	summary := fmt.Sprintf("%d pages, %d assets, %d skipped", len(r.Pages), len(r.Assets), len(r.Skipped))
	if r.DryRun {
		pretty.Info("Dry run: " + summary)
		return
	}
	pretty.Success(fmt.Sprintf("Built %s in %s", summary, r.Elapsed.Round(time.Millisecond)))
	pretty.Path("Output", r.Output)
}

// buildOnce runs a build for watch and serve, logging instead of failing.
func buildOnce(ctx context.Context, cfg *config.Config, opts site.Options, w io.Writer) bool {
	builder := site.NewBuilder(cfg)
	builder.Logger = cli.GetLogger("build")
	report, err := builder.Build(ctx, opts)
	if err != nil {
		if ctx.Err() == nil {
			cli.NewErrorHandler(false).Handle(err)
		}
		return false
	}
	printReport(w, report, false)
	return true
}
