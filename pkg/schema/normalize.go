package schema

// SerialPolicy is the single dialect capability normalization depends on.
// SQLite's native auto-increment only triggers on a plain INTEGER PRIMARY
// KEY column, so dialects with PlainSerial() == true must not receive the
// size=big/unsigned expansion on serial and foreign fields.
//
// dialect.Dialect satisfies this interface.
type SerialPolicy interface {
	PlainSerial() bool
}

// Schema is the fully-expanded output of Normalize: low-level column
// definitions, the primary-key field set, and named index membership.
type Schema struct {
	// FieldOrder holds field names in declaration order.
	FieldOrder []string

	// Fields maps field name to its expanded definition.
	Fields map[string]Field

	// Primary holds the primary-key fields in declaration order.
	Primary []string

	// IndexOrder holds index names in first-appearance order.
	IndexOrder []string

	// Indexes maps index name to its member fields in appearance order.
	// Single-column indexes are keyed by the field's own name.
	Indexes map[string][]string
}

// SinglePrimary returns the bare field name when the primary key consists
// of exactly one field. Callers that support only single-column keys use
// this instead of Primary.
func (s *Schema) SinglePrimary() (string, bool) {
	if len(s.Primary) == 1 {
		return s.Primary[0], true
	}
	return "", false
}

// Normalize expands a shorthand Description into a Schema. It is a pure
// function of the description and the dialect's serial policy.
//
// Expansion rules:
//   - "serial" becomes integer + primary + auto_increment, with size=big
//     and unsigned added unless the dialect requires a plain serial.
//   - "foreign" becomes integer + indexed, with the same size exception.
//   - "varchar" with no size defaults to size 255.
//   - Fields flagged primary join the primary-key set in declaration
//     order, duplicates suppressed.
//   - A string Indexed value names a composite index the field joins; a
//     true Indexed value makes the field its own single-column index.
//   - Any index whose member set equals the primary-key set is dropped:
//     the primary key is already an index.
//
// Unsupported or malformed types are passed through untouched; rejecting
// them is the DDL generator's responsibility.
func Normalize(desc *Description, policy SerialPolicy) *Schema {
	s := &Schema{
		Fields:  make(map[string]Field, desc.Len()),
		Indexes: make(map[string][]string),
	}
	plain := policy.PlainSerial()

	for _, name := range desc.names {
		f := desc.fields[name]

		switch f.Type {
		case "serial":
			f.Type = "integer"
			f.AutoIncrement = true
			f.Primary = true
			if !plain {
				f.Size = "big"
				f.Unsigned = true
			}
		case "foreign":
			f.Type = "integer"
			if f.Indexed == nil {
				f.Indexed = true
			}
			if !plain {
				f.Size = "big"
				f.Unsigned = true
			}
		case "varchar":
			if f.Size == nil {
				f.Size = 255
			}
		}

		if f.Primary && !contains(s.Primary, name) {
			s.Primary = append(s.Primary, name)
		}

		switch idx := f.Indexed.(type) {
		case string:
			if !contains(s.Indexes[idx], name) {
				if _, ok := s.Indexes[idx]; !ok {
					s.IndexOrder = append(s.IndexOrder, idx)
				}
				s.Indexes[idx] = append(s.Indexes[idx], name)
			}
		case bool:
			if idx {
				if _, ok := s.Indexes[name]; !ok {
					s.IndexOrder = append(s.IndexOrder, name)
				}
				s.Indexes[name] = []string{name}
			}
		}

		s.FieldOrder = append(s.FieldOrder, name)
		s.Fields[name] = f
	}

	// The primary key is already an index; drop any exact duplicate.
	for _, name := range s.IndexOrder {
		if sameSet(s.Indexes[name], s.Primary) {
			delete(s.Indexes, name)
		}
	}
	kept := s.IndexOrder[:0]
	for _, name := range s.IndexOrder {
		if _, ok := s.Indexes[name]; ok {
			kept = append(kept, name)
		}
	}
	s.IndexOrder = kept

	return s
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// sameSet reports whether a and b contain the same members, ignoring
// order.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !contains(b, v) {
			return false
		}
	}
	return true
}
