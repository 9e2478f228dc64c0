package ovsdb

import (
	"encoding/json"
	"fmt"
	"io"
)

// DatabaseSchema is a database schema as returned by get_schema (RFC 7047
// section 4.1.2).
type DatabaseSchema struct {
	Name     string                 `json:"name"`
	Version  string                 `json:"version"`
	Checksum string                 `json:"cksum,omitempty"`
	Tables   map[string]TableSchema `json:"tables"`
}

// TableSchema is a table schema as per RFC 7047 section 3.2.
type TableSchema struct {
	Columns map[string]ColumnSchema `json:"columns"`
	MaxRows *int                    `json:"maxRows,omitempty"`
	IsRoot  *bool                   `json:"isRoot,omitempty"`
	Indexes [][]string              `json:"indexes,omitempty"`
}

// ColumnSchema is a column schema as per RFC 7047 section 3.2.
//
// The "type" field is polymorphic: it is either a bare atomic-type string
// or an object describing a set, map or enum. The core protocol never
// needs to interpret it, only to carry it from get_schema to a caller that
// does, so it is kept verbatim rather than reparsed into a classification.
type ColumnSchema struct {
	Type      json.RawMessage `json:"type"`
	Ephemeral *bool           `json:"ephemeral,omitempty"`
	Mutable   *bool           `json:"mutable,omitempty"`
}

// Print writes a human-readable summary of the schema, table names and
// column names (but not the raw column type object, which is left to
// callers that need to interpret it).
func (schema *DatabaseSchema) Print(w io.Writer) {
	fmt.Fprintf(w, "%s, (%s)\n", schema.Name, schema.Version)
	for table, tableSchema := range schema.Tables {
		fmt.Fprintf(w, "\t%s\n", table)
		for column := range tableSchema.Columns {
			fmt.Fprintf(w, "\t\t%s\n", column)
		}
	}
}

// Table looks up a table schema by name, returning ok=false if it is not
// declared in the schema.
func (schema *DatabaseSchema) Table(name string) (TableSchema, bool) {
	t, ok := schema.Tables[name]
	return t, ok
}
