package ovsdb

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

const recordTag = "ovsdb"

var uuidPtrType = reflect.TypeOf((*uuid.UUID)(nil))

type fieldSpec struct {
	index  []int
	column string
}

type recordSchema struct {
	fields []fieldSpec
}

var recordSchemaCache sync.Map // reflect.Type -> *recordSchema

// schemaFor compiles and caches the column layout of a record type, walking
// its struct tags once rather than on every ToMap/FromMap call.
func schemaFor(t reflect.Type) (*recordSchema, error) {
	if cached, ok := recordSchemaCache.Load(t); ok {
		return cached.(*recordSchema), nil
	}
	schema, err := compileRecordSchema(t)
	if err != nil {
		return nil, err
	}
	recordSchemaCache.Store(t, schema)
	return schema, nil
}

func compileRecordSchema(t reflect.Type) (*recordSchema, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("ovsdb: record type %s must be a struct", t)
	}
	var fields []fieldSpec
	hasUUID, hasVersion := false, false
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup(recordTag)
		if !ok || tag == "-" {
			continue
		}
		switch tag {
		case "_uuid":
			if f.Type != uuidPtrType {
				return nil, fmt.Errorf("ovsdb: field %s tagged %q must have type *uuid.UUID", f.Name, tag)
			}
			hasUUID = true
		case "_version":
			if f.Type != uuidPtrType {
				return nil, fmt.Errorf("ovsdb: field %s tagged %q must have type *uuid.UUID", f.Name, tag)
			}
			hasVersion = true
		}
		fields = append(fields, fieldSpec{index: f.Index, column: tag})
	}
	if !hasUUID {
		return nil, fmt.Errorf("ovsdb: record type %s has no field tagged \"_uuid\"", t)
	}
	if !hasVersion {
		return nil, fmt.Errorf("ovsdb: record type %s has no field tagged \"_version\"", t)
	}
	return &recordSchema{fields: fields}, nil
}

// NewRecord returns a zero-valued record: every declared field at its Go
// zero value, _uuid and _version nil.
func NewRecord[T any]() *T {
	return new(T)
}

// ToMap converts a record into its OVSDB row representation. A declared
// field that is a nil pointer (including an unset _uuid or _version) is
// omitted from the result entirely, per the OVSDB convention that an
// absent key means "leave unchanged" on write and "unpopulated" on read.
// Every other field is always present, even when it encodes to an empty
// set or map.
func ToMap[T any](r *T) (Row, error) {
	t := reflect.TypeOf(*r)
	schema, err := schemaFor(t)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(r).Elem()
	row := make(Row, len(schema.fields))
	for _, f := range schema.fields {
		fv := rv.FieldByIndex(f.index)
		if fv.Kind() == reflect.Ptr && fv.IsNil() {
			continue
		}
		val, err := encodeValue(fv)
		if err != nil {
			return nil, &DecodeError{Field: f.column, Reason: err.Error(), Err: err}
		}
		row[f.column] = val
	}
	return row, nil
}

// FromMap builds a record from a decoded OVSDB row. Columns absent from m
// leave the corresponding field at its zero value. A failure names the
// column that could not be converted.
func FromMap[T any](m Row) (*T, error) {
	r := NewRecord[T]()
	t := reflect.TypeOf(*r)
	schema, err := schemaFor(t)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(r).Elem()
	for _, f := range schema.fields {
		val, ok := m[f.column]
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(f.index)
		if err := decodeValue(fv, val); err != nil {
			if de, ok := err.(*DecodeError); ok {
				return nil, de.WithField(f.column)
			}
			return nil, &DecodeError{Field: f.column, Reason: err.Error(), Err: err}
		}
	}
	return r, nil
}
