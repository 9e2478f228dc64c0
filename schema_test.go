package ovsdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nbSchemaWire = `{
	"name": "OVN_Northbound",
	"version": "5.31.0",
	"cksum": "1234 5678",
	"tables": {
		"NB_Global": {
			"columns": {
				"nb_cfg": {"type": "integer"},
				"connections": {"type": {"key": {"type": "uuid", "refTable": "Connection"}, "min": 0, "max": "unlimited"}},
				"name": {"type": "string", "ephemeral": true}
			},
			"maxRows": 1,
			"isRoot": true
		}
	}
}`

func TestDatabaseSchemaUnmarshal(t *testing.T) {
	var schema DatabaseSchema
	require.NoError(t, json.Unmarshal([]byte(nbSchemaWire), &schema))

	assert.Equal(t, "OVN_Northbound", schema.Name)
	assert.Equal(t, "5.31.0", schema.Version)
	assert.Equal(t, "1234 5678", schema.Checksum)

	table, ok := schema.Table("NB_Global")
	require.True(t, ok)
	require.NotNil(t, table.MaxRows)
	assert.Equal(t, 1, *table.MaxRows)
	require.NotNil(t, table.IsRoot)
	assert.True(t, *table.IsRoot)

	nameCol := table.Columns["name"]
	require.NotNil(t, nameCol.Ephemeral)
	assert.True(t, *nameCol.Ephemeral)
	assert.JSONEq(t, `"string"`, string(nameCol.Type))

	connCol := table.Columns["connections"]
	assert.JSONEq(t,
		`{"key":{"type":"uuid","refTable":"Connection"},"min":0,"max":"unlimited"}`,
		string(connCol.Type))
}

func TestDatabaseSchemaTableLookupMiss(t *testing.T) {
	var schema DatabaseSchema
	require.NoError(t, json.Unmarshal([]byte(nbSchemaWire), &schema))

	_, ok := schema.Table("No_Such_Table")
	assert.False(t, ok)
}
