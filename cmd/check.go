package cmd

import (
	"fmt"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/logging"
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	var (
		site   siteFlags
		source string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report likely mistakes in the site configuration",
		Long: `Check the sidebar configuration for empty labels and addresses,
absolute or duplicate addresses, a root prefix without a trailing slash,
and links to pages missing from the source directory.

Findings are warnings: rendering never validates the sidebar. Use --strict
to exit non-zero when there are any.

Examples:
  docnav check
  docnav check --preset pages --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := site.loadSite(cmd)
			if err != nil {
				return err
			}
			dir := cfg.Build.Source
			if cmd.Flags().Changed("source") {
				dir = source
			}

			issues := config.Lint(cfg.Site, cfg.RootPrefix(), dir)
			if issues == nil {
				issues = []config.Issue{}
			}

			if cli.GetOptions(cmd).JSONOutput {
				if err := writeJSON(cmd.OutOrStdout(), issues); err != nil {
					return err
				}
			} else {
				pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
				for _, issue := range issues {
					pretty.Warn(issue.String())
				}
				if len(issues) == 0 {
					pretty.Success("No issues found")
				} else {
					pretty.Info(fmt.Sprintf("%d issue(s)", len(issues)))
				}
			}

			if strict && len(issues) > 0 {
				return errors.LintWarnings(len(issues))
			}
			return nil
		},
	}

	site.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Directory checked for link targets (default: build.source)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when there are warnings")
	return cmd
}
