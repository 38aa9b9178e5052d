package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOptimizeCommand creates the optimize command: run the dialect's
// maintenance commands (VACUUM, OPTIMIZE TABLE).
func NewOptimizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Run dialect-specific database maintenance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, cleanup, err := openConn(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := conn.Optimize(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "done")
			return nil
		},
	}
}
