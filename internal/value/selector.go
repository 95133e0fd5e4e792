package value

import (
	"slices"
	"strconv"
	"strings"
)

// Segment is one step of a Selector: either an array index or an object
// field name.
type Segment struct {
	field   string
	index   int
	isIndex bool
}

// Index returns a segment addressing the i'th element of an array.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// Field returns a segment addressing the named member of an object.
func Field(name string) Segment { return Segment{field: name} }

// IsIndex reports whether s addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Int returns the array index of s. It is 0 for field segments.
func (s Segment) Int() int { return s.index }

// Name returns the field name of s. It is "" for index segments.
func (s Segment) Name() string { return s.field }

// String renders the index in decimal or the field name as is.
func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.field
}

// Selector is a path from the root of a value to one of its descendants.
// The zero Selector addresses the root. Selectors are values: Push and Pop
// return new selectors and never modify the receiver, so one selector can
// be extended independently by sibling branches of a traversal.
type Selector struct {
	segs []Segment
}

// Path builds a selector from segments.
func Path(segs ...Segment) Selector {
	return Selector{segs: slices.Clone(segs)}
}

// Push returns a selector with seg appended.
func (s Selector) Push(seg Segment) Selector {
	segs := make([]Segment, len(s.segs)+1)
	copy(segs, s.segs)
	segs[len(s.segs)] = seg
	return Selector{segs: segs}
}

// Pop returns a selector with the last segment removed. Popping the root
// yields the root.
func (s Selector) Pop() Selector {
	if len(s.segs) == 0 {
		return s
	}
	return Selector{segs: s.segs[:len(s.segs)-1:len(s.segs)-1]}
}

// Len returns the number of segments.
func (s Selector) Len() int { return len(s.segs) }

// IsRoot reports whether s addresses the root.
func (s Selector) IsRoot() bool { return len(s.segs) == 0 }

// Segments returns a copy of the segments.
func (s Selector) Segments() []Segment { return slices.Clone(s.segs) }

// Last returns the final segment.
func (s Selector) Last() (Segment, bool) {
	if len(s.segs) == 0 {
		return Segment{}, false
	}
	return s.segs[len(s.segs)-1], true
}

// Label renders only the last segment, which is what a widget shows as its
// caption. The root has an empty label.
func (s Selector) Label() string {
	last, ok := s.Last()
	if !ok {
		return ""
	}
	return last.String()
}

// String renders the full path, e.g. $.info.description[2].
func (s Selector) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, seg := range s.segs {
		if seg.isIndex {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.index))
			sb.WriteByte(']')
			continue
		}
		sb.WriteByte('.')
		sb.WriteString(seg.field)
	}
	return sb.String()
}

// Equal reports whether both selectors address the same path.
func (s Selector) Equal(other Selector) bool {
	return slices.Equal(s.segs, other.segs)
}

// HasPrefix reports whether prefix addresses s itself or one of its
// ancestors.
func (s Selector) HasPrefix(prefix Selector) bool {
	return len(prefix.segs) <= len(s.segs) && slices.Equal(s.segs[:len(prefix.segs)], prefix.segs)
}
