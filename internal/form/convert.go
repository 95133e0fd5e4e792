package form

import (
	"reflect"

	"archiwum/internal/value"
)

// ToValue converts a record into the generic value tree the renderer works
// on.
func ToValue[T any](record T) (value.Value, error) {
	v, err := value.Encode(record)
	if err != nil {
		return value.Value{}, &DeserializingError{TypeName: typeName[T](), Message: err.Error()}
	}
	return v, nil
}

// FromValue converts an edited value tree back into a record. It fails when
// the tree no longer has the shape T expects.
func FromValue[T any](v value.Value) (T, error) {
	var out T
	if err := value.Decode(v, &out); err != nil {
		var zero T
		return zero, &DeserializingError{TypeName: typeName[T](), Message: err.Error()}
	}
	return out, nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
