package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/termicon/pkg/config"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err //nolint:wrapcheck // Already descriptive.
			}

			_, err = cmd.OutOrStdout().Write(append(data, '\n'))

			return err //nolint:wrapcheck // Return the original error.
		},
	}
}
