package ovsdb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bridgeRecord struct {
	UUID        *uuid.UUID        `ovsdb:"_uuid"`
	Version     *uuid.UUID        `ovsdb:"_version"`
	Name        string            `ovsdb:"name"`
	OtherConfig map[string]string `ovsdb:"other_config"`
	Ports       []string          `ovsdb:"ports"`
	Description *string           `ovsdb:"description"`
}

func TestRecordRoundTrip(t *testing.T) {
	u := uuid.New()
	desc := "core bridge"
	r := &bridgeRecord{
		UUID:        &u,
		Name:        "br0",
		OtherConfig: map[string]string{"foo": "bar"},
		Ports:       []string{"eth0", "eth1"},
		Description: &desc,
	}

	row, err := ToMap(r)
	require.NoError(t, err)

	got, err := FromMap[bridgeRecord](row)
	require.NoError(t, err)

	assert.Equal(t, r.Name, got.Name)
	assert.Equal(t, r.OtherConfig, got.OtherConfig)
	assert.Equal(t, r.Ports, got.Ports)
	require.NotNil(t, got.UUID)
	assert.Equal(t, *r.UUID, *got.UUID)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Nil(t, got.Version)
}

func TestToMapOmitsNilOptionalFields(t *testing.T) {
	r := &bridgeRecord{Name: "br1", Ports: []string{}}
	row, err := ToMap(r)
	require.NoError(t, err)

	_, hasUUID := row["_uuid"]
	assert.False(t, hasUUID, "_uuid must be omitted when nil")
	_, hasVersion := row["_version"]
	assert.False(t, hasVersion, "_version must be omitted when nil")
	_, hasDescription := row["description"]
	assert.False(t, hasDescription, "a nil optional pointer field must be omitted")

	// Ports is a sequence, not an Option: an empty slice is still present.
	portsVal, hasPorts := row["ports"]
	require.True(t, hasPorts, "an empty (non-optional) sequence field must still be present")
	set, ok := portsVal.Set()
	require.True(t, ok)
	assert.Empty(t, set.Atoms)
}

func TestFromMapLeavesMissingFieldsZero(t *testing.T) {
	row := Row{"name": AtomValue(NewStringAtom("br2"))}
	got, err := FromMap[bridgeRecord](row)
	require.NoError(t, err)
	assert.Equal(t, "br2", got.Name)
	assert.Nil(t, got.UUID)
	assert.Nil(t, got.Ports)
	assert.Nil(t, got.OtherConfig)
}

func TestFromMapNamesFailingField(t *testing.T) {
	row := Row{"name": MapValue(OvsMap{})}
	_, err := FromMap[bridgeRecord](row)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "name", de.Field)
}

func TestFromMapRejectsEmptySetForNonOptionalScalar(t *testing.T) {
	row := Row{"name": SetValue(OvsSet{})}
	_, err := FromMap[bridgeRecord](row)
	require.Error(t, err, "an empty set cannot stand in for a required scalar column")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "name", de.Field)
}

func TestMapEncodeFailsRatherThanEmptying(t *testing.T) {
	type badMap struct {
		UUID    *uuid.UUID        `ovsdb:"_uuid"`
		Version *uuid.UUID        `ovsdb:"_version"`
		Data    map[string][]string `ovsdb:"data"`
	}
	r := &badMap{Data: map[string][]string{"k": {"cannot be an atom"}}}
	_, err := ToMap(r)
	require.Error(t, err, "a map whose values cannot encode to atoms must fail, not silently produce an empty map")
}

func TestNewRecordIsZeroValue(t *testing.T) {
	r := NewRecord[bridgeRecord]()
	assert.Nil(t, r.UUID)
	assert.Equal(t, "", r.Name)
}

func TestRecordRequiresUUIDAndVersionTags(t *testing.T) {
	type noTags struct {
		Name string `ovsdb:"name"`
	}
	_, err := ToMap(&noTags{Name: "x"})
	require.Error(t, err)
}
