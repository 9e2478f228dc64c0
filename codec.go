package ovsdb

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// encodeValue converts a Go value into its OVSDB wire-value algebra
// representation, dispatching on the value's static Go type the way the
// original Rust implementation dispatches on a trait impl rather than on a
// runtime schema lookup.
//
// Collections fail on the first element that cannot be converted; unlike
// the reference implementation this never substitutes a silently-emptied
// set or map for a partially-failed conversion.
func encodeValue(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return SetValue(OvsSet{}), nil
		}
		return encodeValue(rv.Elem())
	case reflect.String:
		return AtomValue(NewStringAtom(rv.String())), nil
	case reflect.Bool:
		return AtomValue(NewBooleanAtom(rv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return AtomValue(NewIntegerAtom(rv.Int())), nil
	case reflect.Float32, reflect.Float64:
		return AtomValue(NewRealAtom(rv.Float())), nil
	case reflect.Struct:
		if rv.Type() == uuidType {
			return AtomValue(NewUUIDAtom(rv.Interface().(uuid.UUID))), nil
		}
		return Value{}, fmt.Errorf("ovsdb: cannot encode struct type %s as an atom", rv.Type())
	case reflect.Slice:
		return encodeSlice(rv)
	case reflect.Map:
		return encodeMap(rv)
	default:
		return Value{}, fmt.Errorf("ovsdb: cannot encode value of kind %s", rv.Kind())
	}
}

func encodeSlice(rv reflect.Value) (Value, error) {
	n := rv.Len()
	if n == 0 {
		return SetValue(OvsSet{}), nil
	}
	atoms := make([]Atom, 0, n)
	for i := 0; i < n; i++ {
		elemVal, err := encodeValue(rv.Index(i))
		if err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		a, ok := elemVal.Atom()
		if !ok {
			return Value{}, fmt.Errorf("element %d: must encode to an atom, got %s", i, elemVal.describe())
		}
		atoms = append(atoms, a)
	}
	return SetValue(OvsSet{Atoms: atoms}), nil
}

func encodeMap(rv reflect.Value) (Value, error) {
	if rv.Len() == 0 {
		return MapValue(OvsMap{}), nil
	}
	pairs := make([]MapPair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		kVal, err := encodeValue(iter.Key())
		if err != nil {
			return Value{}, fmt.Errorf("map key: %w", err)
		}
		k, ok := kVal.Atom()
		if !ok {
			return Value{}, fmt.Errorf("map key must encode to an atom, got %s", kVal.describe())
		}
		vVal, err := encodeValue(iter.Value())
		if err != nil {
			return Value{}, fmt.Errorf("map value for key %v: %w", iter.Key().Interface(), err)
		}
		v, ok := vVal.Atom()
		if !ok {
			return Value{}, fmt.Errorf("map value for key %v must encode to an atom, got %s", iter.Key().Interface(), vVal.describe())
		}
		pairs = append(pairs, MapPair{Key: k, Value: v})
	}
	return MapValue(OvsMap{Pairs: pairs}), nil
}

// decodeValue fills rv (addressable) from an OVSDB wire value. Kind
// mismatches, such as a map arriving where an atom-valued field is
// declared, are reported rather than coerced. The one exception is an
// integer atom decoded into a floating-point field, which is accepted.
func decodeValue(rv reflect.Value, v Value) error {
	switch rv.Kind() {
	case reflect.Ptr:
		return decodePtr(rv, v)
	case reflect.Slice:
		return decodeSlice(rv, v)
	case reflect.Map:
		return decodeMap(rv, v)
	case reflect.String:
		a, ok := v.Atom()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected a string atom, found %s", v.describe())}
		}
		s, ok := a.String()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected a string atom, found %s", a.describe())}
		}
		rv.SetString(s)
		return nil
	case reflect.Bool:
		a, ok := v.Atom()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected a boolean atom, found %s", v.describe())}
		}
		b, ok := a.Bool()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected a boolean atom, found %s", a.describe())}
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		a, ok := v.Atom()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected an integer atom, found %s", v.describe())}
		}
		i, ok := a.Integer()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected an integer atom, found %s", a.describe())}
		}
		rv.SetInt(i)
		return nil
	case reflect.Float32, reflect.Float64:
		a, ok := v.Atom()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected a real atom, found %s", v.describe())}
		}
		if i, ok := a.Integer(); ok {
			rv.SetFloat(float64(i))
			return nil
		}
		f, ok := a.Real()
		if !ok {
			return &DecodeError{Reason: fmt.Sprintf("expected a real atom, found %s", a.describe())}
		}
		rv.SetFloat(f)
		return nil
	case reflect.Struct:
		if rv.Type() == uuidType {
			a, ok := v.Atom()
			if !ok {
				return &DecodeError{Reason: fmt.Sprintf("expected a uuid atom, found %s", v.describe())}
			}
			u, ok := a.UUID()
			if !ok {
				return &DecodeError{Reason: fmt.Sprintf("expected a uuid atom, found %s", a.describe())}
			}
			rv.Set(reflect.ValueOf(u))
			return nil
		}
		return fmt.Errorf("ovsdb: cannot decode into struct type %s", rv.Type())
	default:
		return fmt.Errorf("ovsdb: cannot decode into field of kind %s", rv.Kind())
	}
}

func decodePtr(rv reflect.Value, v Value) error {
	if isEmptySetValue(v) {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	elem := reflect.New(rv.Type().Elem())
	if err := decodeValue(elem.Elem(), v); err != nil {
		return err
	}
	rv.Set(elem)
	return nil
}

func decodeSlice(rv reflect.Value, v Value) error {
	switch {
	case v.IsSet():
		s, _ := v.Set()
		out := reflect.MakeSlice(rv.Type(), 0, len(s.Atoms))
		for i, a := range s.Atoms {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeValue(elem, AtomValue(a)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			out = reflect.Append(out, elem)
		}
		rv.Set(out)
		return nil
	case v.IsAtom():
		// Shorthand: a lone atom stands for a singleton sequence.
		a, _ := v.Atom()
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeValue(elem, AtomValue(a)); err != nil {
			return err
		}
		rv.Set(reflect.Append(reflect.MakeSlice(rv.Type(), 0, 1), elem))
		return nil
	default:
		return &DecodeError{Reason: fmt.Sprintf("expected a sequence, found %s", v.describe())}
	}
}

func decodeMap(rv reflect.Value, v Value) error {
	mp, ok := v.Map()
	if !ok {
		return &DecodeError{Reason: fmt.Sprintf("expected a map, found %s", v.describe())}
	}
	out := reflect.MakeMapWithSize(rv.Type(), len(mp.Pairs))
	for _, p := range mp.Pairs {
		kv := reflect.New(rv.Type().Key()).Elem()
		if err := decodeValue(kv, AtomValue(p.Key)); err != nil {
			return fmt.Errorf("map key: %w", err)
		}
		vv := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeValue(vv, AtomValue(p.Value)); err != nil {
			return fmt.Errorf("map value: %w", err)
		}
		out.SetMapIndex(kv, vv)
	}
	rv.Set(out)
	return nil
}
