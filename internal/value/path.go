package value

import (
	"errors"
	"fmt"
)

// ErrNoNode is returned when a selector does not address a node of the
// value it is applied to.
var ErrNoNode = errors.New("selector does not address a node")

// At returns the node addressed by sel.
func (v Value) At(sel Selector) (Value, bool) {
	cur := v
	for _, seg := range sel.segs {
		next, ok := cur.child(seg)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

func (v Value) child(seg Segment) (Value, bool) {
	switch {
	case seg.isIndex && v.kind == KindArray:
		if seg.index < 0 || seg.index >= len(v.arr) {
			return Value{}, false
		}
		return v.arr[seg.index], true
	case !seg.isIndex && v.kind == KindObject:
		return v.obj.Get(seg.field)
	}
	return Value{}, false
}

// Assoc returns a copy of v with the node addressed by sel replaced by
// leaf. Every collection on the path is copied one level deep and every
// node off the path is shared with v. The addressed node must already
// exist.
func (v Value) Assoc(sel Selector, leaf Value) (Value, error) {
	out, err := v.assoc(sel.segs, leaf)
	if err != nil {
		return Value{}, fmt.Errorf("assoc %s: %w", sel, err)
	}
	return out, nil
}

func (v Value) assoc(segs []Segment, leaf Value) (Value, error) {
	if len(segs) == 0 {
		return leaf, nil
	}
	seg := segs[0]
	child, ok := v.child(seg)
	if !ok {
		return Value{}, ErrNoNode
	}
	next, err := child.assoc(segs[1:], leaf)
	if err != nil {
		return Value{}, err
	}
	if seg.isIndex {
		return v.WithIndex(seg.index, next), nil
	}
	return ObjectOf(v.obj.With(seg.field, next)), nil
}

// Walk visits v and all of its descendants depth first, parents before
// children, in array and insertion order. Returning false from fn skips
// the children of the node just visited.
func Walk(v Value, fn func(sel Selector, v Value) bool) {
	walk(v, Selector{}, fn)
}

func walk(v Value, sel Selector, fn func(Selector, Value) bool) {
	if !fn(sel, v) {
		return
	}
	switch v.kind {
	case KindArray:
		for i, e := range v.arr {
			walk(e, sel.Push(Index(i)), fn)
		}
	case KindObject:
		for k, e := range v.obj.All() {
			walk(e, sel.Push(Field(k)), fn)
		}
	}
}
