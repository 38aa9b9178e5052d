package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command: run a statement that returns
// no rows. Placeholder tokens ({prefix}, {charset}, {collate}) are
// resolved before execution.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>",
		Short: "Execute a statement without a result set",
		Example: `  crossdb exec "DELETE FROM {prefix}nodes WHERE stale = 1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, cleanup, err := openConn(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := conn.Exec(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				affected = 0
			}
			fmt.Fprintf(cmd.OutOrStdout(), "(%d rows affected)\n", affected)
			return nil
		},
	}
}
