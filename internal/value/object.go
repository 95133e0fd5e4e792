package value

import (
	"iter"
	"maps"
	"slices"
)

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an immutable mapping from string keys to values that
// remembers the order in which keys were first inserted. The mutation
// methods return new objects; the receiver is left untouched. A nil
// *Object behaves like an empty object.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject builds an object from members. When a key repeats, the later
// value wins but the key keeps its first position.
func NewObject(members ...Member) *Object {
	o := &Object{
		keys: make([]string, 0, len(members)),
		vals: make(map[string]Value, len(members)),
	}
	for _, m := range members {
		if _, ok := o.vals[m.Key]; !ok {
			o.keys = append(o.keys, m.Key)
		}
		o.vals[m.Key] = m.Value
	}
	return o
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// At returns the value stored under key, or Null if there is none.
func (o *Object) At(key string) Value {
	v, _ := o.Get(key)
	return v
}

// Contains reports whether key is present.
func (o *Object) Contains(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates over the members in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// With returns a copy of the object with key bound to v. An existing key
// keeps its position; a new key is appended.
func (o *Object) With(key string, v Value) *Object {
	if o == nil {
		return NewObject(Member{Key: key, Value: v})
	}
	keys := o.keys
	if _, ok := o.vals[key]; !ok {
		keys = append(slices.Clip(slices.Clone(o.keys)), key)
	}
	vals := maps.Clone(o.vals)
	vals[key] = v
	return &Object{keys: keys, vals: vals}
}

// Equal reports whether both objects hold the same keys bound to equal
// values. Key order is not significant.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for k, v := range o.All() {
		w, ok := other.Get(k)
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}
