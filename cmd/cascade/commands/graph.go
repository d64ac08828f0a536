package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cascade/internal/adapters/export"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph TYPE",
		Short: "Render the dependency graph of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("format")
			format, err := export.ParseFormat(raw)
			if err != nil {
				return err
			}
			return c.app.Graph(configPath(cmd), args[0], cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringP("format", "f", string(export.FormatDOT), "Output format (dot or mermaid)")
	return cmd
}
