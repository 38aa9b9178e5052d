package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/leapstack-labs/crossdb/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/crossdb/pkg/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodesSchema = `
id: serial
name: [varchar, 64]
body: text
`

func writeSchemaFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(nodesSchema), 0o644))
	return path
}

func runDDL(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewDDLCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDDLCommand_SQLite(t *testing.T) {
	out, err := runDDL(t, "nodes", "-f", writeSchemaFile(t), "-d", "sqlite")
	require.NoError(t, err)

	want := "CREATE TABLE `nodes` (\n" +
		"  `id` INTEGER PRIMARY KEY NOT NULL,\n" +
		"  `name` VARCHAR(64) NOT NULL,\n" +
		"  `body` TEXT NOT NULL\n" +
		");\n"
	assert.Equal(t, want, out)
}

func TestDDLCommand_MySQLWithPrefix(t *testing.T) {
	out, err := runDDL(t, "nodes", "-f", writeSchemaFile(t), "-d", "mysql", "--prefix", "acme")
	require.NoError(t, err)

	assert.Contains(t, out, "CREATE TABLE `acme_nodes`")
	assert.Contains(t, out, "`id` BIGINT UNSIGNED AUTO_INCREMENT NOT NULL")
	assert.Contains(t, out, "PRIMARY KEY (`id`)")
	assert.Contains(t, out, "CHARACTER SET utf8 COLLATE utf8_general_ci")
}

func TestDDLCommand_UnknownDialect(t *testing.T) {
	_, err := runDDL(t, "nodes", "-f", writeSchemaFile(t), "-d", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "postgres"`)
}

func TestDDLCommand_MissingSchemaFile(t *testing.T) {
	_, err := runDDL(t, "nodes", "-f", filepath.Join(t.TempDir(), "nope.yaml"), "-d", "sqlite")
	require.Error(t, err)
}
