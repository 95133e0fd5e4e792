package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"archiwum/cmd/archiwum/ui"
	"archiwum/internal/contract"
	"archiwum/internal/form"
	"archiwum/internal/value"
)

var errNoTarget = errors.New("nothing to change at the focused field")

// formChanged is the root callback handed to form.Render.
func formChanged(v value.Value, err error) form.Msg {
	if err != nil {
		return formUpdatedMsg{result: form.Fail(err)}
	}
	return formUpdatedMsg{result: form.Ok(v)}
}

func newCreatePage(record contract.RepairContract) (createPage, error) {
	v, err := form.ToValue(record)
	if err != nil {
		return createPage{}, err
	}
	input := textinput.New()
	input.Prompt = ""

	p := createPage{input: input}
	p.load(v)
	if len(p.rows) > 1 {
		p.bind(p.rows[1].widget)
	}
	return p, nil
}

// load renders v and makes it the last good value.
func (p *createPage) load(v value.Value) {
	p.lastGood = v
	p.buffer = form.Ok(v)

	root := form.Render(v, formChanged, value.Path())
	rows := make([]formRow, 0, len(p.rows))
	form.Walk(root, func(w form.Widget, depth int) bool {
		rows = append(rows, formRow{widget: w, depth: depth})
		return true
	})
	p.rows = rows
}

// apply handles the outcome of an edit. On success the form is rebuilt
// from the new value and focus stays on the same path, or its closest
// surviving ancestor.
func (p *createPage) apply(result form.Result) {
	if !result.OK() {
		p.buffer = result
		return
	}
	p.load(result.Value)

	i := p.rowIndex(p.focus)
	for i < 0 && !p.focus.IsRoot() {
		p.focus = p.focus.Pop()
		i = p.rowIndex(p.focus)
	}
	if i <= 0 {
		i = min(1, len(p.rows)-1)
	}
	w := p.rows[i].widget
	if !p.bound || !w.Selector().Equal(p.inputFor) {
		p.bind(w)
	}
}

// bind moves focus to w. A text input takes over the editor, loaded with
// the widget's text.
func (p *createPage) bind(w form.Widget) {
	p.focus = w.Selector()
	ti, ok := w.(*form.TextInput)
	if !ok {
		p.input.Blur()
		p.bound = false
		return
	}
	p.input.SetValue(ti.Text)
	p.input.CursorEnd()
	p.input.Focus()
	p.inputFor = ti.Selector()
	p.bound = true
}

func (p *createPage) rowIndex(sel value.Selector) int {
	for i, r := range p.rows {
		if r.widget.Selector().Equal(sel) {
			return i
		}
	}
	return -1
}

// focused returns the focused widget. The root is never focused.
func (p *createPage) focused() (form.Widget, bool) {
	i := p.rowIndex(p.focus)
	if i <= 0 {
		return nil, false
	}
	return p.rows[i].widget, true
}

// move shifts focus by delta rows. A pending invalid edit is dropped.
func (p *createPage) move(delta int) {
	if len(p.rows) < 2 {
		return
	}
	p.buffer = form.Ok(p.lastGood)
	i := p.rowIndex(p.focus)
	i = max(1, min(len(p.rows)-1, i+delta))
	p.bind(p.rows[i].widget)
}

// appendItem adds a new element to the list that holds the focused field.
// Structural edits return the same message an edit through the widgets
// would, or an error when nothing around the focus can be changed.
func (p *createPage) appendItem() (form.Msg, error) {
	sel, ok := p.enclosing(func(s value.Selector, v value.Value) bool {
		return v.Kind() == value.KindArray
	})
	if !ok {
		return nil, errNoTarget
	}
	arr, _ := p.lastGood.At(sel)

	elem, err := newElement(sel, arr)
	if err != nil {
		return nil, err
	}
	next, err := p.lastGood.Assoc(sel, arr.Append(elem))
	if err != nil {
		return nil, err
	}
	p.focus = sel.Push(value.Index(arr.Len()))
	return formChanged(next, nil), nil
}

// removeItem deletes the list element that holds the focused field.
func (p *createPage) removeItem() (form.Msg, error) {
	sel, ok := p.enclosing(func(s value.Selector, _ value.Value) bool {
		last, ok := s.Last()
		return ok && last.IsIndex()
	})
	if !ok {
		return nil, errNoTarget
	}
	last, _ := sel.Last()
	parent := sel.Pop()
	arr, _ := p.lastGood.At(parent)

	kept := make([]value.Value, 0, arr.Len())
	for i, elem := range arr.Elems() {
		if i != last.Int() {
			kept = append(kept, elem)
		}
	}
	next, err := p.lastGood.Assoc(parent, value.Array(kept...))
	if err != nil {
		return nil, err
	}
	if len(kept) > 0 {
		p.focus = parent.Push(value.Index(min(last.Int(), len(kept)-1)))
	} else {
		p.focus = parent
	}
	return formChanged(next, nil), nil
}

// toggleSection fills an empty optional section around the focused field
// or clears a filled one.
func (p *createPage) toggleSection() (form.Msg, error) {
	sel, ok := p.enclosing(func(s value.Selector, v value.Value) bool {
		last, ok := s.Last()
		if !ok || last.IsIndex() {
			return false
		}
		if _, known := contract.NewElement(last.Name()); !known {
			return false
		}
		return v.IsNull() || v.Kind() == value.KindObject
	})
	if !ok {
		return nil, errNoTarget
	}
	current, _ := p.lastGood.At(sel)

	fill := value.Null()
	if current.IsNull() {
		last, _ := sel.Last()
		elem, _ := contract.NewElement(last.Name())
		v, err := form.ToValue(elem)
		if err != nil {
			return nil, err
		}
		fill = v
	}
	next, err := p.lastGood.Assoc(sel, fill)
	if err != nil {
		return nil, err
	}
	p.focus = sel
	return formChanged(next, nil), nil
}

// enclosing walks from the focused path towards the root and returns the
// first path accepted by match.
func (p *createPage) enclosing(match func(value.Selector, value.Value) bool) (value.Selector, bool) {
	for s := p.focus; !s.IsRoot(); s = s.Pop() {
		v, ok := p.lastGood.At(s)
		if ok && match(s, v) {
			return s, true
		}
	}
	return value.Selector{}, false
}

// newElement builds the value appended to arr, which sits at sel. Known
// contract lists get a fresh record; other lists get a blank copy of their
// last element.
func newElement(sel value.Selector, arr value.Value) (value.Value, error) {
	if last, ok := sel.Last(); ok && !last.IsIndex() {
		if elem, known := contract.NewElement(last.Name()); known {
			return form.ToValue(elem)
		}
	}
	if arr.Len() == 0 {
		return value.Value{}, fmt.Errorf("no template for new items of %s", sel)
	}
	return blank(arr.Index(arr.Len() - 1)), nil
}

// blank returns v with every leaf reset to its zero value.
func blank(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindBool:
		return value.Bool(false)
	case value.KindNumber:
		return value.Number(0)
	case value.KindString:
		return value.String("")
	case value.KindArray:
		return value.Array()
	case value.KindObject:
		obj := v.AsObject()
		for key, member := range obj.All() {
			obj = obj.With(key, blank(member))
		}
		return value.ObjectOf(obj)
	}
	return value.Null()
}

// view renders the form body and returns the line of the focused row.
func (p *createPage) view(styles ui.Styles, layout ui.LayoutConfig) (string, int) {
	if !p.buffer.OK() {
		return p.errorView(styles, layout), 0
	}

	var sb strings.Builder
	focusLine := 0
	for i, r := range p.rows {
		if i == 0 {
			continue
		}
		focused := r.widget.Selector().Equal(p.focus)
		if focused {
			focusLine = i - 1
		}
		sb.WriteString(p.row(styles, layout, r, focused))
		sb.WriteString("\n")
	}
	return sb.String(), focusLine
}

func (p *createPage) row(styles ui.Styles, layout ui.LayoutConfig, r formRow, focused bool) string {
	depth := r.depth - 1
	marker, labelStyle := "  ", styles.FieldLabel
	if focused {
		marker, labelStyle = styles.Cursor.Render("› "), styles.FocusedLabel
	}
	indent := strings.Repeat(" ", depth*ui.FormIndent)
	width := layout.LabelColumn(depth)
	label := labelStyle.Width(width).Render(ui.Truncate(r.widget.Caption(), width))

	var field string
	switch w := r.widget.(type) {
	case *form.Toggle:
		field = "[ ]"
		if w.Checked {
			field = "[x]"
		}
	case *form.TextInput:
		switch {
		case focused && p.bound:
			field = p.input.View()
		case w.Text == "":
			field = styles.Muted.Render("(empty)")
		default:
			field = styles.Body.Render(w.Text)
		}
	case *form.Label:
		field = styles.Muted.Render("none")
		if focused {
			field = styles.Muted.Render("none, ctrl+o to fill in")
		}
	case *form.Scroll:
		if w.Kind == value.KindArray {
			field = styles.Muted.Render(fmt.Sprintf("%d items", len(w.Children)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, marker, indent, label, " ", field)
}

// errorView replaces the form body while the latest edit is invalid. The
// focused editor stays visible so the user can correct it.
func (p *createPage) errorView(styles ui.Styles, layout ui.LayoutConfig) string {
	var sb strings.Builder
	sb.WriteString(styles.ErrorBox.Width(layout.ContentWidth() - 2).Render(p.buffer.Err.Error()))
	sb.WriteString("\n\n")
	if w, ok := p.focused(); ok {
		sb.WriteString(styles.FocusedLabel.Render(w.Selector().String()))
		sb.WriteString("  ")
		sb.WriteString(p.input.View())
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Muted.Render("The form comes back as soon as the value is valid."))
	sb.WriteString("\n")
	return sb.String()
}
