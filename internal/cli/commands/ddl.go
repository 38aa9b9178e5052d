package commands

import (
	"fmt"

	"github.com/leapstack-labs/crossdb/pkg/db"
	"github.com/leapstack-labs/crossdb/pkg/ddl"
	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
	"github.com/spf13/cobra"
)

// NewDDLCommand creates the ddl command: render CREATE TABLE statements
// offline, without a database connection.
func NewDDLCommand() *cobra.Command {
	var (
		schemaFile  string
		dialectName string
		prefix      string
		charset     string
		collate     string
	)

	cmd := &cobra.Command{
		Use:   "ddl <table>",
		Short: "Render the CREATE TABLE DDL for a schema file",
		Example: `  # Render SQLite DDL for the nodes table
  crossdb ddl nodes -f nodes.yaml -d sqlite

  # Render MySQL DDL with a table prefix
  crossdb ddl nodes -f nodes.yaml -d mysql --prefix acme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loadDescription(schemaFile)
			if err != nil {
				return err
			}
			d, err := dialect.Lookup(dialectName)
			if err != nil {
				return err
			}

			if prefix != "" {
				prefix += "_"
			}
			normalized := schema.Normalize(desc, d)
			stmt, post, err := ddl.CreateTable(prefix+args[0], normalized, d, charset, collate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, stmt+";")
			for _, p := range post {
				fmt.Fprintln(out, p+";")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaFile, "file", "f", "", "Schema description file (YAML)")
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "sqlite", "Target dialect")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Table-name prefix")
	cmd.Flags().StringVar(&charset, "charset", db.DefaultCharset, "Character set")
	cmd.Flags().StringVar(&collate, "collate", db.DefaultCollation, "Collation")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
