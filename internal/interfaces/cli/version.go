package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate}
			return PrintResult(cmd, info, func() error {
				fmt.Fprintf(cmd.OutOrStdout(), "proteinscope %s (commit: %s, built: %s, %s/%s)\n",
					info.Version, info.Commit, info.BuildDate, runtime.GOOS, runtime.GOARCH)
				return nil
			})
		},
	}
}

//Personal.AI order the ending
