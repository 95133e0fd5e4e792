// Package ui layout constants for consistent spacing and dimensions
package ui

const (
	HeaderHeight    = 2
	FooterHeight    = 2
	StatusBarHeight = 1

	// Indent per nesting level in the form view
	FormIndent = 2

	// Width reserved for field captions
	LabelWidth = 28

	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 12
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable width between the side paddings.
func (l LayoutConfig) ContentWidth() int {
	return max(l.TerminalWidth-4, MinimumTerminalWidth-4)
}

// ContentHeight returns the rows left for the page body.
func (l LayoutConfig) ContentHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight-StatusBarHeight, 1)
}

// LabelColumn returns the caption column width for a form row at depth.
// Compact terminals get a narrower column.
func (l LayoutConfig) LabelColumn(depth int) int {
	width := LabelWidth
	if l.IsCompact {
		width = LabelWidth * 2 / 3
	}
	return max(width-depth*FormIndent, 8)
}
