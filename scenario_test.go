package ovsdb

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nbGlobal struct {
	UUID         *uuid.UUID        `ovsdb:"_uuid"`
	Version      *uuid.UUID        `ovsdb:"_version"`
	Connections  []uuid.UUID       `ovsdb:"connections"`
	ExternalIds  map[string]string `ovsdb:"external_ids"`
	SSL          []string          `ovsdb:"ssl"`
	Ipsec        bool              `ovsdb:"ipsec"`
	NbCfg        int64             `ovsdb:"nb_cfg"`
	Name         string            `ovsdb:"name"`
}

const nbGlobalWire = `{
	"connections": ["uuid", "601c7161-97df-42ae-b377-3baf21830d8f"],
	"external_ids": ["map", [["test", "bara"]]],
	"ssl": ["set", []],
	"ipsec": false,
	"nb_cfg": 0,
	"name": "global"
}`

func TestScenarioNBGlobalDecode(t *testing.T) {
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(nbGlobalWire), &raw))

	row := make(Row, len(raw))
	for k, v := range raw {
		var val Value
		require.NoError(t, json.Unmarshal(v, &val))
		row[k] = val
	}

	rec, err := FromMap[nbGlobal](row)
	require.NoError(t, err)

	require.Len(t, rec.Connections, 1)
	assert.Equal(t, "601c7161-97df-42ae-b377-3baf21830d8f", rec.Connections[0].String())
	assert.Equal(t, map[string]string{"test": "bara"}, rec.ExternalIds)
	assert.Empty(t, rec.SSL)
	assert.False(t, rec.Ipsec)
	assert.Equal(t, int64(0), rec.NbCfg)
	assert.Equal(t, "global", rec.Name)
}

func TestScenarioNBGlobalEncode(t *testing.T) {
	u := uuid.MustParse("601c7161-97df-42ae-b377-3baf21830d8f")
	rec := &nbGlobal{
		Connections: []uuid.UUID{u},
		ExternalIds: map[string]string{"test": "bara"},
		SSL:         []string{},
		Ipsec:       false,
		NbCfg:       0,
		Name:        "global",
	}
	row, err := ToMap(rec)
	require.NoError(t, err)

	connB, err := json.Marshal(row["connections"])
	require.NoError(t, err)
	assert.JSONEq(t, `["uuid","601c7161-97df-42ae-b377-3baf21830d8f"]`, string(connB))

	sslB, err := json.Marshal(row["ssl"])
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(sslB))

	extB, err := json.Marshal(row["external_ids"])
	require.NoError(t, err)
	assert.JSONEq(t, `["map",[["test","bara"]]]`, string(extB))
}

func TestScenarioMultiElementSetEncode(t *testing.T) {
	ua := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ub := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	rec := &nbGlobal{Connections: []uuid.UUID{ua, ub}}
	row, err := ToMap(rec)
	require.NoError(t, err)

	b, err := json.Marshal(row["connections"])
	require.NoError(t, err)
	assert.JSONEq(t,
		`["set",[["uuid","11111111-1111-1111-1111-111111111111"],["uuid","22222222-2222-2222-2222-222222222222"]]]`,
		string(b))
}
