package ovsdb

import (
	"encoding/json"
	"fmt"
)

// MapPair is a single key/value entry of an OvsMap.
type MapPair struct {
	Key   Atom
	Value Atom
}

// OvsMap is an ordered sequence of key/value atom pairs. Keys are expected
// to be unique; the wire form does not enforce it.
type OvsMap struct {
	Pairs []MapPair
}

// MarshalJSON always uses the long form ["map", [[k, v], ...]]; unlike sets,
// maps have no bare-value shorthand, even when empty.
func (m OvsMap) MarshalJSON() ([]byte, error) {
	pairs := make([][2]Atom, len(m.Pairs))
	for i, p := range m.Pairs {
		pairs[i] = [2]Atom{p.Key, p.Value}
	}
	return json.Marshal([2]interface{}{"map", pairs})
}

func (m *OvsMap) UnmarshalJSON(b []byte) error {
	v, err := decodeValueJSON(b)
	if err != nil {
		return err
	}
	mp, ok := v.Map()
	if !ok {
		return &DecodeError{Reason: fmt.Sprintf("expected a map, found %s", v.describe())}
	}
	*m = mp
	return nil
}
