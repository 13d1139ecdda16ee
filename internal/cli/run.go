package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akramparvez/bureaucrat/internal/engine"
)

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <process>",
		Short: "Launch a single declared process and supervise it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := loadSpecs(opts)
			if err != nil {
				return err
			}
			name := args[0]
			declared := false
			for _, spec := range specs {
				if spec.Name == name {
					declared = true
					break
				}
			}
			if !declared {
				return fmt.Errorf("process %q is not declared in %s", name, opts.procfile)
			}
			return supervise(cmd, opts, specs, engine.NewFilter(name))
		},
	}
	return cmd
}
