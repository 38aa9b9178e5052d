// Package schema defines the shorthand table description format and its
// normalization into fully-expanded column, primary-key, and index
// definitions.
//
// A Description is the driver-agnostic input: an ordered mapping of field
// name to a shorthand definition. Normalize expands it into a Schema that
// the DDL generator consumes. Field declaration order is significant (it
// drives column and primary-key ordering), so Description preserves it.
package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field is a column definition. In a Description it carries the shorthand
// form (possibly just a type alias like "serial"); after Normalize it is
// fully expanded.
type Field struct {
	// Type is the abstract type name ("integer", "varchar", "enum", ...).
	// The aliases "serial" and "foreign" are expanded by Normalize.
	Type string

	// Size is nil, an int (varchar(64)), a string keyword ("big"), or a
	// []any (enum values, or precision/scale for double and float).
	Size any

	// Indexed is nil, a bool (single-column index named after the field),
	// or a string naming a composite index this field participates in.
	Indexed any

	// Default, when set, is rendered as the column default. A value whose
	// last character is ')' is treated as a function-call expression and
	// rendered verbatim; anything else is quoted as a string literal.
	Default *string

	Unsigned      bool
	Nullable      bool
	Primary       bool
	Unique        bool
	AutoIncrement bool
}

// Description is an ordered mapping of field name to shorthand definition.
// The zero value is ready to use.
type Description struct {
	names  []string
	fields map[string]Field
}

// Add appends a field definition, replacing any previous definition with
// the same name without changing its position. Returns d for chaining.
func (d *Description) Add(name string, f Field) *Description {
	if d.fields == nil {
		d.fields = make(map[string]Field)
	}
	if _, ok := d.fields[name]; !ok {
		d.names = append(d.names, name)
	}
	d.fields[name] = f
	return d
}

// Names returns the field names in declaration order.
func (d *Description) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Field returns the definition for name.
func (d *Description) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// Len returns the number of fields.
func (d *Description) Len() int { return len(d.names) }

// UnmarshalYAML decodes the shorthand YAML forms:
//
//	id: serial                 # scalar: type only
//	name: [varchar, 64]        # sequence: positional type, size
//	body:                      # mapping: explicit keys
//	  type: text
//	  "null": true
//
// Mapping order in the document is preserved.
func (d *Description) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema description must be a mapping, got %s", nodeKind(node))
	}
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var f Field
		if err := decodeField(node.Content[i+1], &f); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		d.Add(name, f)
	}
	return nil
}

func decodeField(node *yaml.Node, f *Field) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f.Type = node.Value
		return nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return fmt.Errorf("empty shorthand list")
		}
		f.Type = node.Content[0].Value
		if len(node.Content) > 1 {
			size, err := decodeSize(node.Content[1])
			if err != nil {
				return err
			}
			f.Size = size
		}
		return nil
	case yaml.MappingNode:
		return decodeFieldMapping(node, f)
	default:
		return fmt.Errorf("unexpected %s in field definition", nodeKind(node))
	}
}

func decodeFieldMapping(node *yaml.Node, f *Field) error {
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch key {
		case "type":
			f.Type = val.Value
		case "size":
			size, err := decodeSize(val)
			if err != nil {
				return err
			}
			f.Size = size
		case "indexed":
			var v any
			if err := val.Decode(&v); err != nil {
				return err
			}
			f.Indexed = v
		case "default":
			s := val.Value
			f.Default = &s
		case "unsigned":
			if err := val.Decode(&f.Unsigned); err != nil {
				return err
			}
		case "null":
			if err := val.Decode(&f.Nullable); err != nil {
				return err
			}
		case "primary":
			if err := val.Decode(&f.Primary); err != nil {
				return err
			}
		case "unique":
			if err := val.Decode(&f.Unique); err != nil {
				return err
			}
		case "auto_increment":
			if err := val.Decode(&f.AutoIncrement); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown field attribute %q", key)
		}
	}
	return nil
}

// decodeSize decodes a size attribute: an int, a string keyword, or a list
// (enum values, precision/scale).
func decodeSize(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "node"
	}
}
