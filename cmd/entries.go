package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/pkg/nav"
	"github.com/spf13/cobra"
)

func NewEntriesCmd() *cobra.Command {
	var site siteFlags

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Print the computed sidebar",
		Long: `Print the sidebar entries in render order, with the final link
targets. Use --json for machine-readable output.

Examples:
  docnav entries
  docnav entries --preset pages --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := site.loadSite(cmd)
			if err != nil {
				return err
			}

			sb := nav.Build(cfg.Site, cfg.RootPrefix())
			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd.OutOrStdout(), sb)
			}
			printSidebar(cmd.OutOrStdout(), sb)
			return nil
		},
	}

	site.register(cmd)
	return cmd
}

func printSidebar(w io.Writer, sb nav.Sidebar) {
	p := cli.DefaultPalette
	fmt.Fprintln(w, p.Title.Render(sb.Title))

	var walk func(entries []nav.Entry, depth int)
	walk = func(entries []nav.Entry, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, e := range entries {
			switch e.Kind {
			case nav.KindHeading:
				fmt.Fprintf(w, "%s%s\n", indent, p.Section.Render(e.Label))
			case nav.KindGroup:
				walk(e.Children, depth+1)
			default:
				fmt.Fprintf(w, "%s%s %s %s\n", indent, e.Label, p.Muted.Render("->"), p.Sub.Render(e.Href))
			}
		}
	}
	walk(sb.Entries, 1)
}
