package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/crossdb/pkg/db"
	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command: run a query and render the
// result set.
func NewQueryCommand() *cobra.Command {
	var showProfile bool

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Execute a query and print its rows",
		Example: `  crossdb query "SELECT * FROM {prefix}nodes"
  crossdb query --profile "SELECT COUNT(*) FROM {prefix}nodes"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, cleanup, err := openConn(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := conn.Query(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			cols := st.Columns()
			rows, err := st.All()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			renderRows(w, cols, rows)
			if showProfile {
				renderProfile(w, conn.Profile())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showProfile, "profile", false, "Print profiling entries after the result")

	return cmd
}

func renderRows(w io.Writer, cols []string, rows []db.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i, col := range cols {
			r[i] = formatValue(row[col])
		}
		t.AppendRow(r)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

func renderProfile(w io.Writer, entries []db.ProfileEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%12s  %s\n", e.Elapsed, e.Statement)
	}
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}
