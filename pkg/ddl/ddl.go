// Package ddl renders normalized schemas as dialect-specific CREATE TABLE
// statements.
//
// Dialects that cannot express named indexes inside CREATE TABLE get them
// back as separate post-create statements, to be executed in order after
// the table exists. An unsupported field type aborts generation before
// any statement is produced; no partial DDL is ever returned.
package ddl

import (
	"strings"

	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
)

// CreateTable renders s as a CREATE TABLE statement for d, plus any
// post-create statements the dialect requires (CREATE INDEX). The table
// name is used as given; prefixing is the caller's concern.
func CreateTable(table string, s *schema.Schema, d dialect.Dialect, charset, collate string) (string, []string, error) {
	clauses := make([]string, 0, len(s.FieldOrder)+1)
	inlinePK := false

	for _, name := range s.FieldOrder {
		f := s.Fields[name]

		typeSQL, err := d.TypeSQL(name, f)
		if err != nil {
			return "", nil, err
		}

		var b strings.Builder
		b.WriteString(d.Quote(name))
		b.WriteByte(' ')
		b.WriteString(typeSQL)

		if f.AutoIncrement {
			if ai := d.AutoIncrementSQL(); ai != "" {
				b.WriteByte(' ')
				b.WriteString(ai)
			}
			if d.InlinePrimaryKey() {
				inlinePK = true
			}
		} else if f.Unique {
			b.WriteString(" UNIQUE")
		}

		if f.Nullable {
			b.WriteString(" NULL")
		} else {
			b.WriteString(" NOT NULL")
		}

		if f.Default != nil {
			b.WriteString(" DEFAULT ")
			b.WriteString(renderDefault(*f.Default))
		}

		clauses = append(clauses, b.String())
	}

	// The auto-increment column already carries PRIMARY KEY on dialects
	// with inline placement; a second table-level clause would conflict.
	if len(s.Primary) > 0 && !inlinePK {
		clauses = append(clauses, "PRIMARY KEY ("+joinQuoted(d, s.Primary)+")")
	}

	var post []string
	for _, name := range s.IndexOrder {
		cols := joinQuoted(d, s.Indexes[name])
		if d.InlineIndexes() {
			clauses = append(clauses, "INDEX "+d.Quote(name)+" ("+cols+")")
		} else {
			post = append(post, "CREATE INDEX "+d.Quote(name)+" ON "+d.Quote(table)+" ("+cols+")")
		}
	}

	stmt := "CREATE TABLE " + d.Quote(table) + " (\n  " +
		strings.Join(clauses, ",\n  ") + "\n)" +
		d.TableOptions(charset, collate)

	return stmt, post, nil
}

// renderDefault renders a default value. A value ending in ')' is a
// function-call expression (CURRENT_TIMESTAMP(), NOW()) and stays
// verbatim; everything else is quoted as a string literal.
func renderDefault(v string) string {
	if strings.HasSuffix(v, ")") {
		return v
	}
	return "'" + v + "'"
}

func joinQuoted(d dialect.Dialect, idents []string) string {
	return strings.Join(dialect.QuoteAll(d, idents), ", ")
}
