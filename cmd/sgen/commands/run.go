package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/sgen/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate code from schema files, reusing cached results when nothing changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			outputs, err := c.app.Run(cmd.Context(), app.RunOptions{Force: force})
			if err != nil {
				return err
			}
			for _, output := range outputs {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), output)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Bypass the cache and always invoke the compiler")
	return cmd
}
