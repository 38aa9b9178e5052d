package dialect

import (
	"testing"

	"github.com/leapstack-labs/crossdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDialect is a minimal registry fixture.
type fakeDialect struct{ name string }

func (f fakeDialect) Name() string                                    { return f.name }
func (fakeDialect) Driver() string                                    { return "fake" }
func (fakeDialect) Quote(ident string) string                         { return "`" + ident + "`" }
func (fakeDialect) PlainSerial() bool                                 { return false }
func (fakeDialect) TypeSQL(string, schema.Field) (string, error)      { return "TEXT", nil }
func (fakeDialect) AutoIncrementSQL() string                          { return "" }
func (fakeDialect) InlinePrimaryKey() bool                            { return false }
func (fakeDialect) InlineIndexes() bool                               { return false }
func (fakeDialect) TableOptions(string, string) string                { return "" }
func (fakeDialect) InitStatements(string, string, string) []string    { return nil }
func (fakeDialect) TablesQuery() string                               { return "SELECT 1" }
func (fakeDialect) TableExistsQuery() (string, bool)                  { return "SELECT 1", false }
func (fakeDialect) MaintenanceStatements([]string) []string           { return nil }
func (fakeDialect) TranslateError(err error) (string, int, string)    { return "", 0, err.Error() }

func TestRegistry(t *testing.T) {
	Register(fakeDialect{name: "testfake"}, "testalias")

	t.Run("get by name", func(t *testing.T) {
		d, ok := Get("testfake")
		require.True(t, ok)
		assert.Equal(t, "testfake", d.Name())
	})

	t.Run("get by alias", func(t *testing.T) {
		d, ok := Get("testalias")
		require.True(t, ok)
		assert.Equal(t, "testfake", d.Name())
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		d, err := Lookup("TestFake")
		require.NoError(t, err)
		assert.Equal(t, "testfake", d.Name())
	})

	t.Run("unknown dialect error lists available", func(t *testing.T) {
		_, err := Lookup("nope")
		var ude *UnknownDialectError
		require.ErrorAs(t, err, &ude)
		assert.Equal(t, "nope", ude.Name)
		assert.Contains(t, ude.Available, "testfake")
		assert.Contains(t, err.Error(), `unknown dialect "nope"`)
	})

	t.Run("list contains name and alias", func(t *testing.T) {
		names := List()
		assert.Contains(t, names, "testfake")
		assert.Contains(t, names, "testalias")
	})
}

func TestQuoteAll(t *testing.T) {
	d := fakeDialect{name: "q"}
	assert.Equal(t, []string{"`a`", "`b`"}, QuoteAll(d, []string{"a", "b"}))
	assert.Empty(t, QuoteAll(d, nil))
}

func TestUnsupportedTypeError(t *testing.T) {
	err := &UnsupportedTypeError{Dialect: "sqlite", Field: "state", Type: "enum"}
	assert.Contains(t, err.Error(), `"enum"`)
	assert.Contains(t, err.Error(), `"state"`)
	assert.Contains(t, err.Error(), "sqlite")
}
