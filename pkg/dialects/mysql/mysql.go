// Package mysql provides the MySQL-family dialect (MySQL, MariaDB).
package mysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
)

func init() {
	dialect.Register(Dialect{}, "mariadb")
}

// Dialect implements dialect.Dialect for the MySQL family.
type Dialect struct{}

func (Dialect) Name() string   { return "mysql" }
func (Dialect) Driver() string { return "mysql" }

func (Dialect) Quote(ident string) string { return "`" + ident + "`" }

func (Dialect) PlainSerial() bool { return false }

func (Dialect) AutoIncrementSQL() string { return "AUTO_INCREMENT" }
func (Dialect) InlinePrimaryKey() bool   { return false }
func (Dialect) InlineIndexes() bool      { return true }

// typeKeywords maps abstract types to MySQL column type keywords. String
// size keywords are prepended to the keyword (big + INT = BIGINT).
var typeKeywords = map[string]string{
	"integer":   "INT",
	"varchar":   "VARCHAR",
	"text":      "TEXT",
	"enum":      "ENUM",
	"double":    "DOUBLE",
	"float":     "FLOAT",
	"boolean":   "TINYINT",
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

	var sql string
	switch f.Type {
	case "enum":
		values, ok := f.Size.([]any)
		if !ok || len(values) == 0 {
			return "", fmt.Errorf("enum field %q requires a list of values", field)
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = "'" + fmt.Sprint(v) + "'"
		}
		sql = "ENUM(" + strings.Join(quoted, ", ") + ")"
	case "double", "float":
		sql = kw
		if prec, ok := f.Size.([]any); ok && len(prec) == 2 {
			sql = fmt.Sprintf("%s(%v,%v)", kw, prec[0], prec[1])
		}
	default:
		switch size := f.Size.(type) {
		case nil:
			sql = kw
		case string:
			sql = strings.ToUpper(size) + kw
		case int:
			sql = fmt.Sprintf("%s(%d)", kw, size)
		case int64:
			sql = fmt.Sprintf("%s(%d)", kw, size)
		default:
			sql = kw
		}
	}

	if f.Unsigned && f.Type == "integer" {
		sql += " UNSIGNED"
	}
	return sql, nil
}

func (Dialect) TableOptions(charset, collate string) string {
	if charset == "" {
		return ""
	}
	opts := " CHARACTER SET " + charset
	if collate != "" {
		opts += " COLLATE " + collate
	}
	return opts
}

func (Dialect) InitStatements(charset, collate, timezone string) []string {
	stmt := fmt.Sprintf("SET NAMES '%s'", charset)
	if timezone != "" {
		stmt += fmt.Sprintf(`, time_zone = "%s"`, timezone)
	}
	return []string{stmt}
}

func (Dialect) TablesQuery() string { return "SHOW TABLES" }

func (Dialect) TableExistsQuery() (string, bool) { return "SHOW TABLES", false }

func (d Dialect) MaintenanceStatements(tables []string) []string {
	if len(tables) == 0 {
		return nil
	}
	return []string{"OPTIMIZE TABLE " + strings.Join(dialect.QuoteAll(d, tables), ", ")}
}

func (Dialect) TranslateError(err error) (string, int, string) {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return string(me.SQLState[:]), int(me.Number), me.Message
	}
	return "", 0, err.Error()
}
