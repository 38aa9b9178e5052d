package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescription_UnmarshalYAML(t *testing.T) {
	doc := `
id: serial
name: [varchar, 64]
status:
  type: enum
  size: [draft, published]
  default: draft
owner: foreign
body:
  type: text
  "null": true
created:
  type: timestamp
  default: CURRENT_TIMESTAMP()
`

	var desc Description
	require.NoError(t, yaml.Unmarshal([]byte(doc), &desc))

	assert.Equal(t, []string{"id", "name", "status", "owner", "body", "created"}, desc.Names())

	id, ok := desc.Field("id")
	require.True(t, ok)
	assert.Equal(t, "serial", id.Type)
	assert.Nil(t, id.Size)

	name, _ := desc.Field("name")
	assert.Equal(t, "varchar", name.Type)
	assert.Equal(t, 64, name.Size)

	status, _ := desc.Field("status")
	assert.Equal(t, "enum", status.Type)
	assert.Equal(t, []any{"draft", "published"}, status.Size)
	require.NotNil(t, status.Default)
	assert.Equal(t, "draft", *status.Default)

	body, _ := desc.Field("body")
	assert.Equal(t, "text", body.Type)
	assert.True(t, body.Nullable)

	created, _ := desc.Field("created")
	require.NotNil(t, created.Default)
	assert.Equal(t, "CURRENT_TIMESTAMP()", *created.Default)
}

func TestDescription_UnmarshalYAML_Attributes(t *testing.T) {
	doc := `
email:
  type: varchar
  size: 128
  unique: true
rank:
  type: integer
  unsigned: true
  indexed: by_rank
counter:
  type: integer
  auto_increment: true
  primary: true
`

	var desc Description
	require.NoError(t, yaml.Unmarshal([]byte(doc), &desc))

	email, _ := desc.Field("email")
	assert.True(t, email.Unique)

	rank, _ := desc.Field("rank")
	assert.True(t, rank.Unsigned)
	assert.Equal(t, "by_rank", rank.Indexed)

	counter, _ := desc.Field("counter")
	assert.True(t, counter.AutoIncrement)
	assert.True(t, counter.Primary)
}

func TestDescription_UnmarshalYAML_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		errMsg string
	}{
		{
			name:   "not a mapping",
			doc:    `[a, b]`,
			errMsg: "must be a mapping",
		},
		{
			name:   "empty shorthand list",
			doc:    "name: []",
			errMsg: "empty shorthand list",
		},
		{
			name:   "unknown attribute",
			doc:    "name:\n  type: varchar\n  sparkly: true",
			errMsg: "unknown field attribute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var desc Description
			err := yaml.Unmarshal([]byte(tt.doc), &desc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDescription_AddReplacesInPlace(t *testing.T) {
	desc := new(Description).
		Add("a", Field{Type: "varchar"}).
		Add("b", Field{Type: "text"}).
		Add("a", Field{Type: "integer"})

	assert.Equal(t, []string{"a", "b"}, desc.Names())
	a, _ := desc.Field("a")
	assert.Equal(t, "integer", a.Type)
}
