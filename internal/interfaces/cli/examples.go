package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

// NewExamplesCmd creates the examples command.
func NewExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List example structures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			examples := analysis.Examples()
			if cliCtx.Client != nil {
				ctx, cancel := commandContext(cmd, cliCtx)
				defer cancel()
				if examples, err = cliCtx.Client.Analyses().Examples(ctx); err != nil {
					return err
				}
			}

			return PrintResult(cmd, examples, func() error {
				fmt.Fprint(cmd.OutOrStdout(), formatExamples(examples))
				return nil
			})
		},
	}
}

func formatExamples(examples []types.Example) string {
	rows := make([][]string, 0, len(examples))
	for _, e := range examples {
		rows = append(rows, []string{e.ID, e.Name, e.Description})
	}
	return FormatTable([]string{"ID", "NAME", "DESCRIPTION"}, rows)
}

//Personal.AI order the ending
