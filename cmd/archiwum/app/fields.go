package app

import (
	"strconv"

	"archiwum/internal/value"
)

// Field is one leaf of a value tree.
type Field struct {
	Path string
	Text string
}

// Fields lists the leaves of v in walk order. Empty arrays and objects are
// listed too, so every part of the record shows up.
func Fields(v value.Value) []Field {
	var out []Field
	value.Walk(v, func(sel value.Selector, node value.Value) bool {
		var text string
		switch node.Kind() {
		case value.KindNull:
			text = "null"
		case value.KindBool:
			text = strconv.FormatBool(node.AsBool())
		case value.KindNumber:
			text = value.FormatNumber(node.AsNumber())
		case value.KindString:
			text = node.AsString()
		case value.KindArray:
			if node.Len() > 0 {
				return true
			}
			text = "[]"
		case value.KindObject:
			if node.AsObject().Len() > 0 {
				return true
			}
			text = "{}"
		}
		out = append(out, Field{Path: sel.String(), Text: text})
		return true
	})
	return out
}
