package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCreateCommand creates the create command: execute the rendered DDL
// against the configured connection.
func NewCreateCommand() *cobra.Command {
	var schemaFile string

	cmd := &cobra.Command{
		Use:   "create <table>",
		Short: "Create a table from a schema description file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loadDescription(schemaFile)
			if err != nil {
				return err
			}
			conn, cleanup, err := openConn(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := conn.CreateTable(cmd.Context(), args[0], desc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created table %s\n", conn.Options().Prefix+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaFile, "file", "f", "", "Schema description file (YAML)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
