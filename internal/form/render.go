package form

import (
	"archiwum/internal/value"
)

// Render builds the widget tree for v, which sits at sel in the root value.
// Every edit made through the returned widgets ends in exactly one call of
// onChange, carrying a replacement for v with only the edited node changed.
// Errors from any descendant reach onChange unchanged.
func Render(v value.Value, onChange OnChange, sel value.Selector) Widget {
	switch v.Kind() {
	case value.KindBool:
		return &Toggle{
			node:    node{sel: sel},
			Checked: v.AsBool(),
			OnToggle: func(checked bool) Msg {
				return onChange(value.Bool(checked), nil)
			},
		}
	case value.KindNumber:
		return &TextInput{
			node: node{sel: sel},
			Text: value.FormatNumber(v.AsNumber()),
			Kind: value.KindNumber,
			OnInput: func(text string) Msg {
				n, err := value.ParseNumber(text)
				if err != nil {
					return onChange(value.Value{}, &DeserializingError{TypeName: "Number", Message: err.Error()})
				}
				return onChange(value.Number(n), nil)
			},
		}
	case value.KindString:
		return &TextInput{
			node: node{sel: sel},
			Text: v.AsString(),
			Kind: value.KindString,
			OnInput: func(text string) Msg {
				return onChange(value.String(text), nil)
			},
		}
	case value.KindArray:
		return renderArray(v, onChange, sel)
	case value.KindObject:
		return renderObject(v, onChange, sel)
	}
	return &Label{node: node{sel: sel}}
}

func renderArray(v value.Value, onChange OnChange, sel value.Selector) Widget {
	children := make([]Widget, 0, v.Len())
	for i, elem := range v.Elems() {
		childChange := func(child value.Value, err error) Msg {
			if err != nil {
				return onChange(value.Value{}, err)
			}
			return onChange(v.WithIndex(i, child), nil)
		}
		children = append(children, Render(elem, childChange, sel.Push(value.Index(i))))
	}
	return &Scroll{node: node{sel: sel}, Kind: value.KindArray, Children: children}
}

func renderObject(v value.Value, onChange OnChange, sel value.Selector) Widget {
	obj := v.AsObject()
	children := make([]Widget, 0, obj.Len())
	for key, member := range obj.All() {
		childChange := func(child value.Value, err error) Msg {
			if err != nil {
				return onChange(value.Value{}, err)
			}
			return onChange(value.ObjectOf(obj.With(key, child)), nil)
		}
		children = append(children, Render(member, childChange, sel.Push(value.Field(key))))
	}
	return &Scroll{node: node{sel: sel}, Kind: value.KindObject, Children: children}
}
