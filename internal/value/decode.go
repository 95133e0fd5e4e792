package value

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// DecodeError reports a Value that does not fit the Go type it is being
// decoded into. Path addresses the offending node.
type DecodeError struct {
	Path Selector
	Type reflect.Type
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("at %s: into %s: %v", e.Path, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrMissingField is wrapped by a DecodeError when an object lacks a member
// required by the target struct.
var ErrMissingField = errors.New("missing field")

// Decode stores v into the Go value pointed to by target, following the
// same naming rules as Encode. Unknown object members are ignored. A member
// may be absent only if the field is tagged omitempty or has pointer,
// interface, slice or map type.
func Decode(v Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("value: decode target must be a non-nil pointer, got %T", target)
	}
	return decode(v, rv.Elem(), Selector{})
}

func decode(v Value, rv reflect.Value, sel Selector) error {
	t := rv.Type()
	if t == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}
	fail := func(format string, args ...any) error {
		return &DecodeError{Path: sel, Type: t, Err: fmt.Errorf(format, args...)}
	}

	if rv.Kind() == reflect.Pointer {
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return decode(v, rv.Elem(), sel)
	}

	if u, ok := addrAs[Unmarshaler](rv, unmarshalerType); ok {
		if err := u.UnmarshalValue(v); err != nil {
			return &DecodeError{Path: sel, Type: t, Err: err}
		}
		return nil
	}
	if u, ok := addrAs[encoding.TextUnmarshaler](rv, textUnmarshalerType); ok {
		if v.kind != KindString {
			return fail("expected String, found %s", v.kind)
		}
		if err := u.UnmarshalText([]byte(v.s)); err != nil {
			return &DecodeError{Path: sel, Type: t, Err: err}
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fail("cannot decode into non-empty interface")
		}
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		rv.Set(reflect.ValueOf(v.Native()))
		return nil

	case reflect.Bool:
		if v.kind != KindBool {
			return fail("expected Bool, found %s", v.kind)
		}
		rv.SetBool(v.b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.kind != KindNumber {
			return fail("expected Number, found %s", v.kind)
		}
		if v.n != math.Trunc(v.n) {
			return fail("%s is not an integer", FormatNumber(v.n))
		}
		if math.Abs(v.n) > MaxExactInt {
			return fail("%s is not exactly representable in %s", FormatNumber(v.n), t)
		}
		if rv.OverflowInt(int64(v.n)) {
			return fail("%s overflows %s", FormatNumber(v.n), t)
		}
		rv.SetInt(int64(v.n))
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.kind != KindNumber {
			return fail("expected Number, found %s", v.kind)
		}
		if v.n != math.Trunc(v.n) {
			return fail("%s is not an integer", FormatNumber(v.n))
		}
		if v.n > MaxExactInt {
			return fail("%s is not exactly representable in %s", FormatNumber(v.n), t)
		}
		if v.n < 0 || rv.OverflowUint(uint64(v.n)) {
			return fail("%s overflows %s", FormatNumber(v.n), t)
		}
		rv.SetUint(uint64(v.n))
		return nil

	case reflect.Float32, reflect.Float64:
		if v.kind != KindNumber {
			return fail("expected Number, found %s", v.kind)
		}
		if rv.OverflowFloat(v.n) {
			return fail("%s overflows %s", FormatNumber(v.n), t)
		}
		rv.SetFloat(v.n)
		return nil

	case reflect.String:
		if v.kind != KindString {
			return fail("expected String, found %s", v.kind)
		}
		rv.SetString(v.s)
		return nil

	case reflect.Slice:
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		if v.kind != KindArray {
			return fail("expected Array, found %s", v.kind)
		}
		out := reflect.MakeSlice(t, len(v.arr), len(v.arr))
		for i, e := range v.arr {
			if err := decode(e, out.Index(i), sel.Push(Index(i))); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil

	case reflect.Array:
		if v.kind != KindArray {
			return fail("expected Array, found %s", v.kind)
		}
		if len(v.arr) != rv.Len() {
			return fail("expected %d elements, found %d", rv.Len(), len(v.arr))
		}
		for i, e := range v.arr {
			if err := decode(e, rv.Index(i), sel.Push(Index(i))); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fail("map key is not a string")
		}
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		if v.kind != KindObject {
			return fail("expected Object, found %s", v.kind)
		}
		out := reflect.MakeMapWithSize(t, v.obj.Len())
		for k, e := range v.obj.All() {
			elem := reflect.New(t.Elem()).Elem()
			if err := decode(e, elem, sel.Push(Field(k))); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
		}
		rv.Set(out)
		return nil

	case reflect.Struct:
		if v.kind != KindObject {
			return fail("expected Object, found %s", v.kind)
		}
		for _, f := range fieldsOf(t) {
			member, ok := v.obj.Get(f.name)
			if !ok {
				if f.optional() {
					continue
				}
				return &DecodeError{Path: sel.Push(Field(f.name)), Type: f.typ, Err: ErrMissingField}
			}
			if err := decode(member, rv.FieldByIndex(f.index), sel.Push(Field(f.name))); err != nil {
				return err
			}
		}
		return nil
	}
	return fail("unsupported kind %s", rv.Kind())
}

// addrAs returns the address of rv as an I when the pointer type
// implements iface. rv must be addressable.
func addrAs[I any](rv reflect.Value, iface reflect.Type) (I, bool) {
	var zero I
	if !rv.CanAddr() || !reflect.PointerTo(rv.Type()).Implements(iface) {
		return zero, false
	}
	return rv.Addr().Interface().(I), true
}
