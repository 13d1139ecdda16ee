package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			version := "devel"
			goVersion := runtime.Version()
			if info, ok := debug.ReadBuildInfo(); ok {
				if info.Main.Version != "" {
					version = info.Main.Version
				}
				if info.GoVersion != "" {
					goVersion = info.GoVersion
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bureaucrat %s (%s)\n", version, goVersion)
			return nil
		},
	}
	return cmd
}
