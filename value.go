package ovsdb

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Value is the OVSDB wire-value algebra: exactly one of an Atom, a Set or a
// Map. It is the type every column value decodes into before a declared Go
// field type interprets it.
type Value struct {
	atom *Atom
	set  *OvsSet
	mp   *OvsMap
}

func AtomValue(a Atom) Value { return Value{atom: &a} }
func SetValue(s OvsSet) Value { return Value{set: &s} }
func MapValue(m OvsMap) Value { return Value{mp: &m} }

func (v Value) IsAtom() bool { return v.atom != nil }
func (v Value) IsSet() bool  { return v.set != nil }
func (v Value) IsMap() bool  { return v.mp != nil }

func (v Value) Atom() (Atom, bool) {
	if v.atom == nil {
		return Atom{}, false
	}
	return *v.atom, true
}

func (v Value) Set() (OvsSet, bool) {
	if v.set == nil {
		return OvsSet{}, false
	}
	return *v.set, true
}

func (v Value) Map() (OvsMap, bool) {
	if v.mp == nil {
		return OvsMap{}, false
	}
	return *v.mp, true
}

func (v Value) describe() string {
	switch {
	case v.IsAtom():
		a, _ := v.Atom()
		return a.describe()
	case v.IsSet():
		return "set"
	case v.IsMap():
		return "map"
	default:
		return "empty value"
	}
}

func isEmptySetValue(v Value) bool {
	s, ok := v.Set()
	return ok && len(s.Atoms) == 0
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.IsAtom():
		a, _ := v.Atom()
		return json.Marshal(a)
	case v.IsSet():
		s, _ := v.Set()
		return json.Marshal(s)
	case v.IsMap():
		m, _ := v.Map()
		return json.Marshal(m)
	default:
		return json.Marshal(OvsSet{})
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	val, err := decodeValueJSON(b)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// decodeValueJSON parses a raw OVSDB column value into the atom/set/map
// algebra, recognizing the [], null and bare-atom shorthands for empty and
// singleton sets (RFC 7047 section 3.1) and the tagged two-element array
// forms for uuid, named-uuid, set and map.
func decodeValueJSON(b []byte) (Value, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return SetValue(OvsSet{}), nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, &FrameError{Err: err}
	}
	return valueFromAny(raw)
}

func valueFromAny(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return SetValue(OvsSet{}), nil
	case string, bool, json.Number:
		a, err := atomFromAny(raw)
		if err != nil {
			return Value{}, err
		}
		return AtomValue(a), nil
	case []interface{}:
		return valueFromArray(t)
	default:
		return Value{}, &DecodeError{Reason: fmt.Sprintf("cannot decode %T as an OVSDB value", raw)}
	}
}

func valueFromArray(arr []interface{}) (Value, error) {
	if len(arr) == 0 {
		return SetValue(OvsSet{}), nil
	}
	if len(arr) == 2 {
		if tag, ok := arr[0].(string); ok {
			switch tag {
			case "uuid":
				a, err := atomFromTaggedUUID(arr[1], false)
				if err != nil {
					return Value{}, err
				}
				return AtomValue(a), nil
			case "named-uuid":
				a, err := atomFromTaggedUUID(arr[1], true)
				if err != nil {
					return Value{}, err
				}
				return AtomValue(a), nil
			case "set":
				return decodeTaggedSet(arr[1])
			case "map":
				return decodeTaggedMap(arr[1])
			}
		}
	}
	return Value{}, &DecodeError{Reason: "expected a tagged uuid/named-uuid/set/map array"}
}

func decodeTaggedSet(raw interface{}) (Value, error) {
	elems, ok := raw.([]interface{})
	if !ok {
		return Value{}, &DecodeError{Reason: "set payload must be an array"}
	}
	atoms := make([]Atom, 0, len(elems))
	for _, e := range elems {
		a, err := atomFromAny(e)
		if err != nil {
			return Value{}, err
		}
		atoms = append(atoms, a)
	}
	return SetValue(OvsSet{Atoms: atoms}), nil
}

func decodeTaggedMap(raw interface{}) (Value, error) {
	pairs, ok := raw.([]interface{})
	if !ok {
		return Value{}, &DecodeError{Reason: "map payload must be an array"}
	}
	mp := OvsMap{Pairs: make([]MapPair, 0, len(pairs))}
	for _, p := range pairs {
		pair, ok := p.([]interface{})
		if !ok || len(pair) != 2 {
			return Value{}, &DecodeError{Reason: "map entry must be a [key, value] pair"}
		}
		k, err := atomFromAny(pair[0])
		if err != nil {
			return Value{}, err
		}
		v, err := atomFromAny(pair[1])
		if err != nil {
			return Value{}, err
		}
		mp.Pairs = append(mp.Pairs, MapPair{Key: k, Value: v})
	}
	return MapValue(mp), nil
}

// atomFromAny decodes a single atom, including atoms nested inside a set or
// map element (where a bare scalar or a tagged uuid/named-uuid array is
// valid, but a nested set or map is not).
func atomFromAny(raw interface{}) (Atom, error) {
	switch t := raw.(type) {
	case string:
		return NewStringAtom(t), nil
	case bool:
		return NewBooleanAtom(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewIntegerAtom(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Atom{}, &DecodeError{Reason: fmt.Sprintf("invalid number %q", t.String())}
		}
		return NewRealAtom(f), nil
	case []interface{}:
		if len(t) == 2 {
			if tag, ok := t[0].(string); ok {
				switch tag {
				case "uuid":
					return atomFromTaggedUUID(t[1], false)
				case "named-uuid":
					return atomFromTaggedUUID(t[1], true)
				}
			}
		}
		return Atom{}, &DecodeError{Reason: "expected an atom, found a nested set or map"}
	default:
		return Atom{}, &DecodeError{Reason: fmt.Sprintf("cannot decode %T as an OVSDB atom", raw)}
	}
}

func atomFromTaggedUUID(raw interface{}, named bool) (Atom, error) {
	s, ok := raw.(string)
	if !ok {
		return Atom{}, &DecodeError{Reason: "uuid tag requires a string value"}
	}
	if named {
		return NewNamedUUIDAtom(s), nil
	}
	if len(s) != 36 {
		return Atom{}, &DecodeError{Reason: fmt.Sprintf("invalid uuid %q: expected 36 characters", s)}
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Atom{}, &DecodeError{Reason: fmt.Sprintf("invalid uuid %q: %v", s, err), Err: err}
	}
	return NewUUIDAtom(u), nil
}
