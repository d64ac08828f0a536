package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/cascade/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [types...]",
		Short: "Build and validate declared types",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Check(cmd.Context(), configPath(cmd), args)

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Status == app.StatusInvalid {
					_, _ = fmt.Fprintf(out, "%s\t%s\n", r.TypeName, r.Err)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\n", r.TypeName, r.Status)
			}
			return err
		},
	}
}
