// Package sqlite provides the SQLite dialect, backed by the pure Go
// modernc.org/sqlite driver.
//
// SQLite's native auto-increment only triggers on a plain INTEGER PRIMARY
// KEY column, so this dialect reports PlainSerial and carries the primary
// key inline on the auto-increment column. Named indexes cannot appear
// inside CREATE TABLE and are emitted as separate CREATE INDEX statements.
package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
	sqlite3 "modernc.org/sqlite"
)

func init() {
	dialect.Register(Dialect{}, "sqlite3")
}

// Dialect implements dialect.Dialect for SQLite.
type Dialect struct{}

func (Dialect) Name() string   { return "sqlite" }
func (Dialect) Driver() string { return "sqlite" }

func (Dialect) Quote(ident string) string { return "`" + ident + "`" }

func (Dialect) PlainSerial() bool { return true }

func (Dialect) AutoIncrementSQL() string { return "PRIMARY KEY" }
func (Dialect) InlinePrimaryKey() bool   { return true }
func (Dialect) InlineIndexes() bool      { return false }

var typeKeywords = map[string]string{
	"integer":   "INTEGER",
	"varchar":   "VARCHAR",
	"text":      "TEXT",
	"double":    "DOUBLE",
	"float":     "FLOAT",
	"boolean":   "INTEGER",
	"datetime":  "DATETIME",
	"timestamp": "TIMESTAMP",
	"date":      "DATE",
	"blob":      "BLOB",
}

func (d Dialect) TypeSQL(field string, f schema.Field) (string, error) {
	kw, ok := typeKeywords[f.Type]
	if !ok {
		return "", &dialect.UnsupportedTypeError{Dialect: d.Name(), Field: field, Type: f.Type}
	}

	switch f.Type {
	case "double", "float":
		if prec, ok := f.Size.([]any); ok && len(prec) == 2 {
			return fmt.Sprintf("%s(%v,%v)", kw, prec[0], prec[1]), nil
		}
		return kw, nil
	case "integer":
		// A string size keyword maps onto the INT family (big -> BIGINT);
		// the bare type stays INTEGER so rowid aliasing works.
		switch size := f.Size.(type) {
		case string:
			return strings.ToUpper(size) + "INT", nil
		case int:
			return fmt.Sprintf("INTEGER(%d)", size), nil
		case int64:
			return fmt.Sprintf("INTEGER(%d)", size), nil
		default:
			return kw, nil
		}
	default:
		switch size := f.Size.(type) {
		case nil:
			return kw, nil
		case string:
			return strings.ToUpper(size) + kw, nil
		case int:
			return fmt.Sprintf("%s(%d)", kw, size), nil
		case int64:
			return fmt.Sprintf("%s(%d)", kw, size), nil
		default:
			return kw, nil
		}
	}
}

func (Dialect) TableOptions(_, _ string) string { return "" }

func (Dialect) InitStatements(_, _, _ string) []string { return nil }

func (Dialect) TablesQuery() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table'"
}

func (Dialect) TableExistsQuery() (string, bool) {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", true
}

func (Dialect) MaintenanceStatements(_ []string) []string {
	return []string{"VACUUM"}
}

func (Dialect) TranslateError(err error) (string, int, string) {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return "", se.Code(), err.Error()
	}
	return "", 0, err.Error()
}
