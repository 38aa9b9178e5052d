// Package dialect provides the SQL dialect strategy contract and a global
// registry of implementations.
//
// A Dialect bundles every backend-specific decision the abstraction layer
// makes: identifier quoting, type rendering, auto-increment and index
// placement, session init statements, table introspection, maintenance
// commands, and driver-native error translation. Concrete implementations
// live in pkg/dialects/*/ packages and register themselves in init(), so
// importing a dialect package is enough to make it selectable by name.
//
// The strategy is selected once at connection construction and is
// immutable for the connection's lifetime.
package dialect

import (
	"fmt"

	"github.com/leapstack-labs/crossdb/pkg/schema"
)

// Dialect is the closed capability set a backend must provide.
type Dialect interface {
	// Name returns the canonical dialect name ("mysql", "sqlite", "oracle").
	Name() string

	// Driver returns the database/sql driver name used to open connections.
	Driver() string

	// Quote wraps an identifier in the dialect's quoting characters.
	Quote(ident string) string

	// PlainSerial reports whether serial/foreign fields must stay plain
	// integers during normalization (see schema.SerialPolicy).
	PlainSerial() bool

	// TypeSQL renders a normalized field's type, size, and signedness as
	// the dialect's native column type. Returns *UnsupportedTypeError for
	// types the dialect cannot render.
	TypeSQL(field string, f schema.Field) (string, error)

	// AutoIncrementSQL returns the inline keyword rendered on an
	// auto-increment column, or "" when the dialect has none.
	AutoIncrementSQL() string

	// InlinePrimaryKey reports whether the auto-increment column carries
	// the primary key inline, suppressing the table-level PRIMARY KEY
	// clause.
	InlinePrimaryKey() bool

	// InlineIndexes reports whether indexes are rendered as INDEX clauses
	// inside CREATE TABLE. Dialects returning false get separate CREATE
	// INDEX statements after table creation.
	InlineIndexes() bool

	// TableOptions returns the trailing CREATE TABLE options clause
	// (character set, collation), or "".
	TableOptions(charset, collate string) string

	// InitStatements returns session initialization statements issued
	// right after connecting.
	InitStatements(charset, collate, timezone string) []string

	// TablesQuery returns a query whose first result column lists the
	// database's table names.
	TablesQuery() string

	// TableExistsQuery returns the introspection query for table
	// existence. When direct is true the query takes the table name as
	// its single parameter; otherwise it lists all tables and the caller
	// performs a membership test.
	TableExistsQuery() (query string, direct bool)

	// MaintenanceStatements returns the dialect's maintenance commands
	// for the given tables (VACUUM, OPTIMIZE TABLE, ...), or nil.
	MaintenanceStatements(tables []string) []string

	// TranslateError extracts the SQL state, numeric error code, and
	// message from a driver-native error. Dialects without structured
	// driver errors return ("", 0, err.Error()).
	TranslateError(err error) (sqlState string, code int, message string)
}

// QuoteAll quotes each identifier in order.
func QuoteAll(d Dialect, idents []string) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = d.Quote(id)
	}
	return out
}

// UnsupportedTypeError is returned by TypeSQL when a field's type has no
// rendering in the dialect. DDL generation aborts on it before any
// statement reaches the driver.
type UnsupportedTypeError struct {
	Dialect string
	Field   string
	Type    string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %q on field %q for dialect %s", e.Type, e.Field, e.Dialect)
}
