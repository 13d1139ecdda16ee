package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the Procfile and list the declared processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := loadSpecs(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Procfile %s is valid: %d processes\n", opts.procfile, len(specs))
			for _, spec := range specs {
				if spec.Replicas > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s (x%d): %s\n", spec.Name, spec.Replicas, spec.Command)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", spec.Name, spec.Command)
				}
			}
			return nil
		},
	}
	return cmd
}
