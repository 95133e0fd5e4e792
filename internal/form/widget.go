// Package form turns an arbitrary value.Value into a tree of editable
// widgets and rebuilds the whole value whenever one of them is edited.
//
// Widgets are plain data plus callbacks. A host lays them out however it
// likes, forwards user input to the callbacks and receives the host message
// produced by the root OnChange. Every callback returns a complete
// replacement for the value passed to Render, so the host never needs to
// know where in the tree the edit happened.
package form

import "archiwum/internal/value"

// Msg is whatever the host wants delivered when an edit completes.
type Msg = any

// OnChange receives either the rebuilt value or the error an edit produced,
// and turns it into a host message. Exactly one of the arguments is
// meaningful: err is nil on success.
type OnChange func(v value.Value, err error) Msg

// Widget is one node of a rendered form.
type Widget interface {
	// Selector is the path of the rendered node from the root value.
	Selector() value.Selector
	// Caption is the text a host shows next to the widget.
	Caption() string

	isWidget()
}

type node struct {
	sel value.Selector
}

func (n node) Selector() value.Selector { return n.sel }
func (n node) Caption() string          { return n.sel.Label() }
func (node) isWidget()                  {}

// Label is a read-only caption, used for null values.
type Label struct {
	node
}

// Toggle edits a boolean.
type Toggle struct {
	node
	Checked  bool
	OnToggle func(checked bool) Msg
}

// TextInput edits a number or a string. Kind tells the host which one, so
// it can pick a suitable input mode.
type TextInput struct {
	node
	Text    string
	Kind    value.Kind
	OnInput func(text string) Msg
}

// Scroll stacks the widgets of an array or object in order.
type Scroll struct {
	node
	Kind     value.Kind
	Children []Widget
}
