package cmd

import (
	"fmt"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd() *cobra.Command {
	var site siteFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the resolved configuration",
		Long: `Shows the configuration docnav actually uses, built by layering:
1. The preset named in the file (or by --preset)
2. Project config (docnav.yml)
3. Override files (docnav.override.yml)
4. Defaults for anything still unset
This is useful for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := site.loadSite(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(out, cfg)
			}

			if path != "" {
				fmt.Fprintf(out, "# Source: %s\n", path)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode config")
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	site.register(cmd)
	return cmd
}
