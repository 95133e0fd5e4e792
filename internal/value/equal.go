package value

import (
	"strings"
)

// Equal reports whether v and other are structurally equal. Objects
// compare by key set and values, arrays element by element.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	}
	return false
}

// String renders v as compact JSON, or as value(Kind) when v holds a
// non-finite number.
func (v Value) String() string {
	var sb strings.Builder
	if err := writeJSON(&sb, v); err != nil {
		return "value(" + v.kind.String() + ")"
	}
	return sb.String()
}
