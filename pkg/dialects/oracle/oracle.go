// Package oracle provides the Oracle-family dialect.
//
// No Oracle driver is imported here; the dialect returns "oracle" as its
// database/sql driver name and callers wanting live connections must
// import a driver that registers under that name. DDL generation and
// quoting work without one.
package oracle

import (
	"fmt"

	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
)

func init() {
	dialect.Register(Dialect{}, "oci", "oci8")
}

// Dialect implements dialect.Dialect for Oracle.
type Dialect struct{}

func (Dialect) Name() string   { return "oracle" }
func (Dialect) Driver() string { return "oracle" }

func (Dialect) Quote(ident string) string { return `"` + ident + `"` }

func (Dialect) PlainSerial() bool { return false }

// Oracle has no inline auto-increment keyword in the DDL subset this
// layer renders; sequences are the caller's concern.
func (Dialect) AutoIncrementSQL() string { return "" }
func (Dialect) InlinePrimaryKey() bool   { return false }
func (Dialect) InlineIndexes() bool      { return false }

// integerPrecision maps size keywords to NUMBER precision.
var integerPrecision = map[string]int{
	"tiny":   3,
	"small":  5,
	"medium": 10,
	"big":    20,
}

func (d Dialect) TypeSQL(field string, f schema.Field) (string, error) {
	switch f.Type {
	case "integer":
		switch size := f.Size.(type) {
		case string:
			if p, ok := integerPrecision[size]; ok {
				return fmt.Sprintf("NUMBER(%d)", p), nil
			}
			return "NUMBER", nil
		case int:
			return fmt.Sprintf("NUMBER(%d)", size), nil
		case int64:
			return fmt.Sprintf("NUMBER(%d)", size), nil
		default:
			return "NUMBER", nil
		}
	case "varchar":
		if size, ok := intSize(f.Size); ok {
			return fmt.Sprintf("VARCHAR2(%d)", size), nil
		}
		return "VARCHAR2(255)", nil
	case "text":
		return "CLOB", nil
	case "double":
		if prec, ok := f.Size.([]any); ok && len(prec) == 2 {
			return fmt.Sprintf("NUMBER(%v,%v)", prec[0], prec[1]), nil
		}
		return "BINARY_DOUBLE", nil
	case "float":
		if prec, ok := f.Size.([]any); ok && len(prec) == 2 {
			return fmt.Sprintf("NUMBER(%v,%v)", prec[0], prec[1]), nil
		}
		return "BINARY_FLOAT", nil
	case "boolean":
		return "NUMBER(1)", nil
	case "datetime", "timestamp":
		return "TIMESTAMP", nil
	case "date":
		return "DATE", nil
	case "blob":
		return "BLOB", nil
	default:
		return "", &dialect.UnsupportedTypeError{Dialect: d.Name(), Field: field, Type: f.Type}
	}
}

func intSize(v any) (int, bool) {
	switch size := v.(type) {
	case int:
		return size, true
	case int64:
		return int(size), true
	default:
		return 0, false
	}
}

func (Dialect) TableOptions(_, _ string) string { return "" }

func (Dialect) InitStatements(_, _, _ string) []string {
	return []string{"ALTER SESSION SET NLS_DATE_FORMAT = 'YYYY-MM-DD'"}
}

func (Dialect) TablesQuery() string {
	return "SELECT table_name FROM user_tables"
}

func (Dialect) TableExistsQuery() (string, bool) {
	return "SELECT table_name FROM user_tables", false
}

func (Dialect) MaintenanceStatements(_ []string) []string { return nil }

func (Dialect) TranslateError(err error) (string, int, string) {
	return "", 0, err.Error()
}
