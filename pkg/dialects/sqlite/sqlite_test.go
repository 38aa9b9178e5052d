package sqlite

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	for _, name := range []string{"sqlite", "sqlite3"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "sqlite", d.Name())
	}
}

func TestCapabilities(t *testing.T) {
	d := Dialect{}
	assert.True(t, d.PlainSerial())
	assert.True(t, d.InlinePrimaryKey())
	assert.False(t, d.InlineIndexes())
	assert.Equal(t, "PRIMARY KEY", d.AutoIncrementSQL())
	assert.Equal(t, "`nodes`", d.Quote("nodes"))
}

func TestTypeSQL(t *testing.T) {
	tests := []struct {
		name    string
		field   schema.Field
		want    string
		wantErr bool
	}{
		{name: "plain integer stays INTEGER for rowid aliasing", field: schema.Field{Type: "integer"}, want: "INTEGER"},
		{name: "big integer", field: schema.Field{Type: "integer", Size: "big"}, want: "BIGINT"},
		{name: "sized integer", field: schema.Field{Type: "integer", Size: 8}, want: "INTEGER(8)"},
		{name: "varchar", field: schema.Field{Type: "varchar", Size: 64}, want: "VARCHAR(64)"},
		{name: "text", field: schema.Field{Type: "text"}, want: "TEXT"},
		{name: "float with precision", field: schema.Field{Type: "float", Size: []any{6, 2}}, want: "FLOAT(6,2)"},
		{name: "unsigned is ignored", field: schema.Field{Type: "integer", Unsigned: true}, want: "INTEGER"},
		{name: "enum unsupported", field: schema.Field{Type: "enum", Size: []any{"a"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dialect{}.TypeSQL("f", tt.field)
			if tt.wantErr {
				var ute *dialect.UnsupportedTypeError
				require.ErrorAs(t, err, &ute)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntrospection(t *testing.T) {
	d := Dialect{}

	assert.Equal(t, "SELECT name FROM sqlite_master WHERE type = 'table'", d.TablesQuery())

	query, direct := d.TableExistsQuery()
	assert.True(t, direct)
	assert.Equal(t, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", query)
}

func TestMaintenanceStatements(t *testing.T) {
	// VACUUM regardless of table list.
	assert.Equal(t, []string{"VACUUM"}, Dialect{}.MaintenanceStatements(nil))
	assert.Equal(t, []string{"VACUUM"}, Dialect{}.MaintenanceStatements([]string{"a"}))
}

func TestInitStatements(t *testing.T) {
	assert.Nil(t, Dialect{}.InitStatements("utf8", "utf8_general_ci", "+00:00"))
}

func TestTranslateError_Opaque(t *testing.T) {
	state, code, msg := Dialect{}.TranslateError(errors.New("locked"))
	assert.Empty(t, state)
	assert.Zero(t, code)
	assert.Equal(t, "locked", msg)
}
