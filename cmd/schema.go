package cmd

import (
	"fmt"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/schema"
	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	var reflect bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of docnav.yml",
		Long: `Print the JSON schema used to validate docnav.yml. Editors that
understand JSON schema can use it for completion.

Examples:
  docnav schema > docnav.schema.json
  docnav schema --reflect`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := schema.Schema()
			if reflect {
				generated, err := config.GenerateSchema()
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
				}
				data = generated
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&reflect, "reflect", false, "Generate the schema from the Go types instead of printing the embedded one")
	return cmd
}
