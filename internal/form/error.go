package form

import "fmt"

// DeserializingError reports a value that could not be turned into the
// named type. It is the only error the form engine produces.
type DeserializingError struct {
	TypeName string
	Message  string
}

func (e *DeserializingError) Error() string {
	return fmt.Sprintf("Deserializing value of type [%s] - %s", e.TypeName, e.Message)
}
