// Package value implements an immutable model for arbitrary structured
// data: null, booleans, numbers, strings, arrays and objects.
//
// Values are never modified in place. Updating a value yields a new value
// that shares every untouched child with the original, so an edit costs one
// shallow copy of each collection on the path to the edited node and
// nothing elsewhere in the tree.
package value

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "Null",
	KindBool:   "Bool",
	KindNumber: "Number",
	KindString: "String",
	KindArray:  "Array",
	KindObject: "Object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a structured value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding elems. The slice is copied.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(elems)}
}

// ObjectOf wraps an object. A nil object is treated as empty.
func ObjectOf(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v and panics for any other kind.
func (v Value) AsBool() bool {
	v.must(KindBool)
	return v.b
}

// AsNumber returns the number held by v and panics for any other kind.
func (v Value) AsNumber() float64 {
	v.must(KindNumber)
	return v.n
}

// AsString returns the string held by v and panics for any other kind.
func (v Value) AsString() string {
	v.must(KindString)
	return v.s
}

// AsObject returns the object held by v and panics for any other kind.
func (v Value) AsObject() *Object {
	v.must(KindObject)
	return v.obj
}

func (v Value) must(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value: %s used as %s", v.kind, k))
	}
}

// Len returns the number of children of an array or object, and 0 for
// every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Index returns the i'th element of an array. It panics if v is not an
// array or i is out of range.
func (v Value) Index(i int) Value {
	v.must(KindArray)
	return v.arr[i]
}

// Elems iterates over the elements of an array in order.
func (v Value) Elems() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindArray {
			return
		}
		for i, e := range v.arr {
			if !yield(i, e) {
				return
			}
		}
	}
}

// WithIndex returns a copy of the array with element i replaced by elem.
// Only the top level slice is copied; all other elements are shared.
func (v Value) WithIndex(i int, elem Value) Value {
	v.must(KindArray)
	if i < 0 || i >= len(v.arr) {
		panic(fmt.Sprintf("value: index %d out of range [0:%d]", i, len(v.arr)))
	}
	arr := slices.Clone(v.arr)
	arr[i] = elem
	return Value{kind: KindArray, arr: arr}
}

// Append returns a copy of the array with elems added at the end.
func (v Value) Append(elems ...Value) Value {
	v.must(KindArray)
	arr := make([]Value, 0, len(v.arr)+len(elems))
	arr = append(arr, v.arr...)
	arr = append(arr, elems...)
	return Value{kind: KindArray, arr: arr}
}

// FormatNumber renders n in its canonical textual form: the shortest
// decimal representation without an exponent.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ParseNumber is the inverse of FormatNumber. Non-finite results are
// rejected since they cannot be represented by any encoding of a Value.
func ParseNumber(text string) (float64, error) {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, fmt.Errorf("parsing %q: not a finite number", text)
	}
	return n, nil
}

// Native converts v into plain Go data: nil, bool, float64, string,
// []any and map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for k, e := range v.obj.All() {
			out[k] = e.Native()
		}
		return out
	}
	return nil
}
