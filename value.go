// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"fmt"
	"reflect"
	"strconv"
)

// Value is the value of a template variable. It is one of Absent,
// StringValue, Mapping and Sequence.
type Value interface {
	// String returns the string form of the value, the text written in
	// place of a {{ ... }} placeholder.
	String() string
	// Truth reports whether the value is truthy in an if condition.
	Truth() bool
	isValue()
}

// Absent is a missing or null value.
type Absent struct{}

func (Absent) String() string { return "" }
func (Absent) Truth() bool    { return false }
func (Absent) isValue()       {}

// StringValue is a string value. It is truthy if it is not empty.
type StringValue string

func (v StringValue) String() string { return string(v) }
func (v StringValue) Truth() bool    { return v != "" }
func (StringValue) isValue()         {}

// Mapping is a mapping from names to values. Its string form is empty and it
// is always truthy.
type Mapping map[string]Value

func (Mapping) String() string { return "" }
func (Mapping) Truth() bool    { return true }
func (Mapping) isValue()       {}

// Get returns the value bound to name, or Absent if name is not bound.
func (m Mapping) Get(name string) Value {
	if v, ok := m[name]; ok && v != nil {
		return v
	}
	return Absent{}
}

// Sequence is a sequence of values, usually mappings. Its string form is
// empty and it is always truthy.
type Sequence []Value

func (Sequence) String() string { return "" }
func (Sequence) Truth() bool    { return true }
func (Sequence) isValue()       {}

// Strings returns a Mapping with the values of m as StringValue.
func Strings(m map[string]string) Mapping {
	vars := make(Mapping, len(m))
	for k, v := range m {
		vars[k] = StringValue(v)
	}
	return vars
}

// ValueOf returns v as a Value.
//
//   - nil and nil pointers are Absent
//   - a Value is returned as is
//   - strings, booleans, numbers and fmt.Stringer values are StringValue
//   - maps with string keys and structs are Mapping
//   - slices and arrays are Sequence
//
// Values of other types are converted with fmt.Sprint.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Absent{}
	case Value:
		return v
	case string:
		return StringValue(v)
	case map[string]string:
		return Strings(v)
	case map[string]any:
		m := make(Mapping, len(v))
		for k, e := range v {
			m[k] = ValueOf(e)
		}
		return m
	case []map[string]string:
		s := make(Sequence, len(v))
		for i, e := range v {
			s[i] = Strings(e)
		}
		return s
	case []any:
		s := make(Sequence, len(v))
		for i, e := range v {
			s[i] = ValueOf(e)
		}
		return s
	case bool:
		return StringValue(strconv.FormatBool(v))
	case fmt.Stringer:
		return StringValue(v.String())
	}
	return valueOf(reflect.ValueOf(v))
}

// valueOf is called by ValueOf for the types without a fast path.
func valueOf(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Invalid:
		return Absent{}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Absent{}
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.String:
		return StringValue(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return StringValue(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return StringValue(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return StringValue(strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()))
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Absent{}
		}
		m := make(Mapping, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = ValueOf(iter.Value().Interface())
		}
		return m
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Absent{}
		}
		s := make(Sequence, rv.Len())
		for i := range s {
			s[i] = ValueOf(rv.Index(i).Interface())
		}
		return s
	case reflect.Struct:
		rt := rv.Type()
		m := make(Mapping, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, ok := field.Tag.Lookup("arc"); ok {
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			m[name] = ValueOf(rv.Field(i).Interface())
		}
		return m
	}
	return StringValue(fmt.Sprint(rv.Interface()))
}
