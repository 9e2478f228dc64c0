package ovsdb

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// AtomKind identifies which alternative of an Atom is populated.
type AtomKind int

// The five OVSDB atomic types (RFC 7047 section 3.1), plus named-uuid.
const (
	AtomString AtomKind = iota
	AtomInteger
	AtomReal
	AtomBoolean
	AtomUUID
	AtomNamedUUID
)

func (k AtomKind) String() string {
	switch k {
	case AtomString:
		return "string"
	case AtomInteger:
		return "integer"
	case AtomReal:
		return "real"
	case AtomBoolean:
		return "boolean"
	case AtomUUID:
		return "uuid"
	case AtomNamedUUID:
		return "named-uuid"
	default:
		return "unknown"
	}
}

var uuidType = reflect.TypeOf(uuid.UUID{})

// Atom is a single OVSDB scalar value: a string, an integer, a real, a
// boolean, or a UUID reference (named or resolved).
type Atom struct {
	kind      AtomKind
	str       string
	integer   int64
	real      float64
	boolean   bool
	uuid      uuid.UUID
	namedUUID string
}

func NewStringAtom(s string) Atom   { return Atom{kind: AtomString, str: s} }
func NewIntegerAtom(i int64) Atom   { return Atom{kind: AtomInteger, integer: i} }
func NewRealAtom(r float64) Atom    { return Atom{kind: AtomReal, real: r} }
func NewBooleanAtom(b bool) Atom    { return Atom{kind: AtomBoolean, boolean: b} }
func NewUUIDAtom(u uuid.UUID) Atom  { return Atom{kind: AtomUUID, uuid: u} }
func NewNamedUUIDAtom(n string) Atom { return Atom{kind: AtomNamedUUID, namedUUID: n} }

func (a Atom) Kind() AtomKind { return a.kind }

func (a Atom) String() (string, bool) {
	if a.kind != AtomString {
		return "", false
	}
	return a.str, true
}

func (a Atom) Integer() (int64, bool) {
	if a.kind != AtomInteger {
		return 0, false
	}
	return a.integer, true
}

func (a Atom) Real() (float64, bool) {
	if a.kind != AtomReal {
		return 0, false
	}
	return a.real, true
}

func (a Atom) Bool() (bool, bool) {
	if a.kind != AtomBoolean {
		return false, false
	}
	return a.boolean, true
}

func (a Atom) UUID() (uuid.UUID, bool) {
	if a.kind != AtomUUID {
		return uuid.UUID{}, false
	}
	return a.uuid, true
}

func (a Atom) NamedUUID() (string, bool) {
	if a.kind != AtomNamedUUID {
		return "", false
	}
	return a.namedUUID, true
}

func (a Atom) Equal(b Atom) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case AtomString:
		return a.str == b.str
	case AtomInteger:
		return a.integer == b.integer
	case AtomReal:
		return a.real == b.real
	case AtomBoolean:
		return a.boolean == b.boolean
	case AtomUUID:
		return a.uuid == b.uuid
	case AtomNamedUUID:
		return a.namedUUID == b.namedUUID
	}
	return false
}

func (a Atom) describe() string { return a.kind.String() + " atom" }

// MarshalJSON renders the atom in its wire form: a bare scalar for string,
// integer, real and boolean; a tagged two-element array for UUID and
// named-UUID, per RFC 7047 section 3.1.
func (a Atom) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AtomString:
		return json.Marshal(a.str)
	case AtomInteger:
		return json.Marshal(a.integer)
	case AtomReal:
		return json.Marshal(a.real)
	case AtomBoolean:
		return json.Marshal(a.boolean)
	case AtomUUID:
		return json.Marshal([2]interface{}{"uuid", a.uuid.String()})
	case AtomNamedUUID:
		return json.Marshal([2]interface{}{"named-uuid", a.namedUUID})
	default:
		return nil, fmt.Errorf("ovsdb: atom has no populated kind")
	}
}

func (a *Atom) UnmarshalJSON(b []byte) error {
	v, err := decodeValueJSON(b)
	if err != nil {
		return err
	}
	atom, ok := v.Atom()
	if !ok {
		return &DecodeError{Reason: fmt.Sprintf("expected an atom, found %s", v.describe())}
	}
	*a = atom
	return nil
}
