package ovsdb

import "encoding/json"

// OvsSet is an ordered sequence of atoms. OVSDB sets carry no duplicates in
// practice, but the wire form never enforces that; uniqueness is left to
// callers that need it.
type OvsSet struct {
	Atoms []Atom
}

// MarshalJSON applies the three wire shorthands: an empty set becomes [], a
// one-element set becomes its bare atom, anything else becomes the tagged
// ["set", [...]] form.
func (s OvsSet) MarshalJSON() ([]byte, error) {
	switch len(s.Atoms) {
	case 0:
		return []byte("[]"), nil
	case 1:
		return json.Marshal(s.Atoms[0])
	default:
		return json.Marshal([2]interface{}{"set", s.Atoms})
	}
}

func (s *OvsSet) UnmarshalJSON(b []byte) error {
	v, err := decodeValueJSON(b)
	if err != nil {
		return err
	}
	switch {
	case v.IsSet():
		set, _ := v.Set()
		*s = set
	case v.IsAtom():
		a, _ := v.Atom()
		*s = OvsSet{Atoms: []Atom{a}}
	default:
		return &DecodeError{Reason: "expected a set, found a map"}
	}
	return nil
}
