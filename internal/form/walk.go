package form

import "archiwum/internal/value"

// Walk visits w and its descendants depth first, parents before children.
// depth is 0 for w itself. Returning false skips the children of the widget
// just visited.
func Walk(w Widget, fn func(w Widget, depth int) bool) {
	walk(w, 0, fn)
}

func walk(w Widget, depth int, fn func(Widget, int) bool) {
	if !fn(w, depth) {
		return
	}
	if s, ok := w.(*Scroll); ok {
		for _, c := range s.Children {
			walk(c, depth+1, fn)
		}
	}
}

// Find returns the widget rendered for sel, if any.
func Find(root Widget, sel value.Selector) (Widget, bool) {
	var found Widget
	Walk(root, func(w Widget, _ int) bool {
		if found != nil {
			return false
		}
		if w.Selector().Equal(sel) {
			found = w
			return false
		}
		return sel.HasPrefix(w.Selector())
	})
	return found, found != nil
}
