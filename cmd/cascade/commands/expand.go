package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand TYPE PROPERTY",
		Short: "Print the notifications raised when a property changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := c.app.Expand(configPath(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
