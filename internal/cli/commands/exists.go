package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExistsCommand creates the exists command.
func NewExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <table>",
		Short: "Check whether a table exists (prefix applied)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, cleanup, err := openConn(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			exists, err := conn.TableExists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), exists)
			return nil
		},
	}
}
