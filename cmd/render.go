package cmd

import (
	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/pkg/htmldoc"
	"github.com/grovetools/docnav/pkg/nav"
	"github.com/spf13/cobra"
)

func NewRenderCmd() *cobra.Command {
	var (
		site    siteFlags
		output  string
		inPlace bool
	)

	cmd := &cobra.Command{
		Use:   "render [page|-]",
		Short: "Render the sidebar into a single page",
		Long: `Render the sidebar into a single HTML page and print the result.

The page must contain a <header> element and an element with the
"explorer" class. The title goes into the header; the links, the Plugins
heading and the plugin group go into the explorer. With no page argument,
or "-", the page is read from stdin.

Examples:
  # Render with the project configuration
  docnav render index.html

  # Render the GitHub Pages variant into a file
  docnav render index.html --preset pages -o _site/index.html

  # Rewrite a page in place
  docnav render started.html --in-place`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger("render")

			cfg, _, err := site.loadSite(cmd)
			if err != nil {
				return err
			}

			page := "-"
			if len(args) == 1 {
				page = args[0]
			}
			if inPlace {
				if page == "-" {
					return errors.New(errors.ErrCodeInvalidInput, "--in-place needs a page argument")
				}
				if output != "" {
					return errors.New(errors.ErrCodeInvalidInput, "--in-place and --output are mutually exclusive")
				}
				output = page
			}

			var doc *htmldoc.Document
			if page == "-" {
				doc, err = htmldoc.Parse(cmd.InOrStdin())
				if err != nil {
					return errors.PageParse("<stdin>", err)
				}
			} else {
				doc, err = htmldoc.ParseFile(page)
				if err != nil {
					return err
				}
			}

			if err := nav.RenderConfig(cfg.Site, cfg.RootPrefix(), doc); err != nil {
				if navErr, ok := errors.As(err); ok && page != "-" {
					navErr.WithDetail("page", page)
				}
				return err
			}
			logger.WithField("page", page).Debug("Rendered sidebar")

			if output == "" {
				if err := doc.Render(cmd.OutOrStdout()); err != nil {
					return errors.PageWrite("<stdout>", err)
				}
				return nil
			}
			return doc.WriteFile(output)
		},
	}

	site.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page to a file instead of stdout")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Overwrite the input page")
	return cmd
}
