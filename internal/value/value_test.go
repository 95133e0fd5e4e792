package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.Equal(Null()))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Number", KindNumber.String())
	assert.Equal(t, "Object", KindObject.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestAccessorsPanicOnWrongKind(t *testing.T) {
	assert.Panics(t, func() { String("x").AsNumber() })
	assert.Panics(t, func() { Number(1).AsBool() })
	assert.Panics(t, func() { Null().AsObject() })
	assert.NotPanics(t, func() { Bool(true).AsBool() })
}

func TestArrayCopiesInput(t *testing.T) {
	elems := []Value{Number(1), Number(2)}
	arr := Array(elems...)
	elems[0] = String("changed")

	assert.Equal(t, 1.0, arr.Index(0).AsNumber())
}

func TestWithIndexLeavesOriginal(t *testing.T) {
	orig := Array(String("a"), String("b"))
	updated := orig.WithIndex(1, String("z"))

	assert.Equal(t, "b", orig.Index(1).AsString())
	assert.Equal(t, "z", updated.Index(1).AsString())
	assert.Panics(t, func() { orig.WithIndex(2, Null()) })
}

func TestAppend(t *testing.T) {
	orig := Array(Number(1))
	grown := orig.Append(Number(2), Number(3))
	assert.Equal(t, 1, orig.Len())
	assert.Equal(t, 3, grown.Len())
}

func TestElemsStopsEarly(t *testing.T) {
	arr := Array(Number(1), Number(2), Number(3))
	var seen []float64
	for _, e := range arr.Elems() {
		seen = append(seen, e.AsNumber())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []float64{1, 2}, seen)

	for range String("x").Elems() {
		t.Fatal("non-array must not yield")
	}
}

func TestFormatParseNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{100, "100"},
		{2.5, "2.5"},
		{-0.125, "-0.125"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatNumber(tt.in)
			assert.Equal(t, tt.want, got)

			back, err := ParseNumber(got)
			require.NoError(t, err)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestParseNumberRejects(t *testing.T) {
	for _, text := range []string{"", "abc", "1,5", "NaN", "Inf", "1e400"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseNumber(text)
			assert.Error(t, err)
		})
	}
}

func TestNative(t *testing.T) {
	v := ObjectOf(NewObject(
		Member{Key: "a", Value: Array(Number(1), Bool(true))},
		Member{Key: "b", Value: Null()},
	))
	want := map[string]any{
		"a": []any{1.0, true},
		"b": nil,
	}
	assert.Equal(t, want, v.Native())
}

func TestEqual(t *testing.T) {
	a := ObjectOf(NewObject(
		Member{Key: "x", Value: Number(1)},
		Member{Key: "y", Value: Array(String("s"))},
	))
	reordered := ObjectOf(NewObject(
		Member{Key: "y", Value: Array(String("s"))},
		Member{Key: "x", Value: Number(1)},
	))
	different := ObjectOf(NewObject(
		Member{Key: "x", Value: Number(1)},
		Member{Key: "y", Value: Array(String("t"))},
	))

	assert.True(t, a.Equal(reordered))
	assert.False(t, a.Equal(different))
	assert.False(t, Number(0).Equal(Null()))
	assert.False(t, Array(Number(1)).Equal(Array(Number(1), Number(1))))
}

func TestObjectInsertionOrder(t *testing.T) {
	o := NewObject(
		Member{Key: "b", Value: Number(1)},
		Member{Key: "a", Value: Number(2)},
		Member{Key: "b", Value: Number(3)},
	)
	assert.Equal(t, []string{"b", "a"}, o.Keys())
	assert.Equal(t, 3.0, o.At("b").AsNumber())

	o2 := o.With("c", Null()).With("a", Bool(true))
	assert.Equal(t, []string{"b", "a", "c"}, o2.Keys())
	assert.Equal(t, []string{"b", "a"}, o.Keys())
	assert.Equal(t, 2.0, o.At("a").AsNumber())
	assert.True(t, o2.At("a").AsBool())
}

func TestNilObject(t *testing.T) {
	var o *Object
	assert.Equal(t, 0, o.Len())
	assert.False(t, o.Contains("x"))
	assert.True(t, o.At("x").IsNull())
	assert.Equal(t, 0, ObjectOf(nil).Len())
	assert.Equal(t, []string{"k"}, o.With("k", Null()).Keys())
}
