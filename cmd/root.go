package cmd

import (
	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/pkg/profiling"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the docnav command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("docnav", "Render documentation navigation sidebars")
	root.Long = `docnav fills the header and sidebar of documentation pages from a
single site description, then builds, watches or serves the result.

Examples:
  docnav init --preset pages
  docnav render index.html --in-place
  docnav build --clean
  docnav serve`

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	standard := root.PersistentPreRun
	root.PersistentPreRun = nil
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		standard(cmd, args)
		return profiler.PreRun(cmd, args)
	}
	root.PersistentPostRun = profiler.PostRun

	root.AddCommand(
		NewRenderCmd(),
		NewEntriesCmd(),
		NewBuildCmd(),
		NewWatchCmd(),
		NewServeCmd(),
		NewCheckCmd(),
		NewInitCmd(),
		NewConfigCmd(),
		NewSchemaCmd(),
		cli.NewVersionCommand("docnav"),
	)

	cli.ApplyStyledHelpRecursive(root)
	return root
}
