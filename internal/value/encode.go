package value

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// MaxExactInt is the largest integer magnitude a Number holds exactly.
// Integers beyond it are rejected in both directions.
const MaxExactInt = 1 << 53

// EncodeError reports a Go value that has no Value representation.
type EncodeError struct {
	Path Selector
	Type reflect.Type
	Msg  string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("at %s: cannot encode %s: %s", e.Path, e.Type, e.Msg)
}

// Encode converts a Go value into a Value by walking it structurally.
// Struct fields are named after their json tags; types implementing
// Marshaler or encoding.TextMarshaler encode themselves; maps must have
// string keys and are emitted in sorted key order. Nil pointers and
// interfaces become Null, nil slices and maps become empty collections.
func Encode(x any) (Value, error) {
	if x == nil {
		return Null(), nil
	}
	return encode(reflect.ValueOf(x), Selector{})
}

func encode(rv reflect.Value, sel Selector) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	t := rv.Type()
	if t == valueType {
		return rv.Interface().(Value), nil
	}
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return Null(), nil
	}
	if m, ok := asInterface[Marshaler](rv, marshalerType); ok {
		v, err := m.MarshalValue()
		if err != nil {
			return Value{}, &EncodeError{Path: sel, Type: t, Msg: err.Error()}
		}
		return v, nil
	}
	if m, ok := asInterface[encoding.TextMarshaler](rv, textMarshalerType); ok {
		text, err := m.MarshalText()
		if err != nil {
			return Value{}, &EncodeError{Path: sel, Type: t, Msg: err.Error()}
		}
		return String(string(text)), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return encode(rv.Elem(), sel)
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i > MaxExactInt || i < -MaxExactInt {
			return Value{}, &EncodeError{Path: sel, Type: t, Msg: fmt.Sprintf("integer %d is not exactly representable as a Number", i)}
		}
		return Number(float64(i)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > MaxExactInt {
			return Value{}, &EncodeError{Path: sel, Type: t, Msg: fmt.Sprintf("integer %d is not exactly representable as a Number", u)}
		}
		return Number(float64(u)), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, &EncodeError{Path: sel, Type: t, Msg: "non-finite number"}
		}
		return Number(f), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range rv.Len() {
			e, err := encode(rv.Index(i), sel.Push(Index(i)))
			if err != nil {
				return Value{}, err
			}
			elems[i] = e
		}
		return Value{kind: KindArray, arr: elems}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Value{}, &EncodeError{Path: sel, Type: t, Msg: "map key is not a string"}
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			e, err := encode(rv.MapIndex(k), sel.Push(Field(k.String())))
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: k.String(), Value: e})
		}
		return ObjectOf(NewObject(members...)), nil
	case reflect.Struct:
		fields := fieldsOf(t)
		members := make([]Member, 0, len(fields))
		for _, f := range fields {
			fv := rv.FieldByIndex(f.index)
			if f.omitEmpty && isEmptyValue(fv) {
				continue
			}
			e, err := encode(fv, sel.Push(Field(f.name)))
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: f.name, Value: e})
		}
		return ObjectOf(NewObject(members...)), nil
	}
	return Value{}, &EncodeError{Path: sel, Type: t, Msg: "unsupported kind " + rv.Kind().String()}
}

// asInterface returns rv (or its address, when that is what implements
// iface) as an I.
func asInterface[I any](rv reflect.Value, iface reflect.Type) (I, bool) {
	var zero I
	if rv.Type().Implements(iface) {
		return rv.Interface().(I), true
	}
	if rv.Kind() != reflect.Pointer && reflect.PointerTo(rv.Type()).Implements(iface) {
		if rv.CanAddr() {
			return rv.Addr().Interface().(I), true
		}
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return ptr.Interface().(I), true
	}
	return zero, false
}
