package form

import "archiwum/internal/value"

// Result is the outcome of the last edit as seen by a host: either a whole
// replacement value or the error that the edit produced.
type Result struct {
	Value value.Value
	Err   error
}

// Ok wraps a successfully rebuilt value.
func Ok(v value.Value) Result { return Result{Value: v} }

// Fail wraps an edit error.
func Fail(err error) Result { return Result{Err: err} }

// OK reports whether the result holds a value.
func (r Result) OK() bool { return r.Err == nil }
