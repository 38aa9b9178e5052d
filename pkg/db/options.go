package db

import "strings"

// Default character set and collation, applied when neither is supplied.
const (
	DefaultCharset   = "utf8"
	DefaultCollation = "utf8_general_ci"
)

// prefixSeparator is appended to a non-empty table prefix.
const prefixSeparator = "_"

// Options configures a connection. The zero value yields the defaults:
// charset utf8, collation utf8_general_ci, no prefix.
type Options struct {
	// ID is an optional label for the connection, used in logs.
	ID string

	// Prefix is the table-name prefix. A trailing separator is appended
	// automatically; empty means no prefix.
	Prefix string

	// Charset is the connection character set. Overriding it without
	// also setting Collation clears the collation, since the default
	// collation only makes sense with the default charset.
	Charset string

	// Collation is the connection collation.
	Collation string

	// Timezone is appended to the session init command (MySQL-family
	// only).
	Timezone string
}

// normalize applies defaults and the prefix separator.
func (o Options) normalize() Options {
	if o.Charset == "" {
		o.Charset = DefaultCharset
		if o.Collation == "" {
			o.Collation = DefaultCollation
		}
	}
	if o.Prefix != "" && !strings.HasSuffix(o.Prefix, prefixSeparator) {
		o.Prefix += prefixSeparator
	}
	return o
}
