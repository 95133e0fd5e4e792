package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("ARCHIWUM_DARK_MODE", "1")
	assert.True(t, DetectTheme().IsDark, "expected dark theme when ARCHIWUM_DARK_MODE=1")

	t.Setenv("ARCHIWUM_DARK_MODE", "false")
	t.Setenv("COLORFGBG", "15;0")
	assert.False(t, DetectTheme().IsDark, "explicit ARCHIWUM_DARK_MODE wins over COLORFGBG")

	t.Setenv("ARCHIWUM_DARK_MODE", "")
	assert.True(t, DetectTheme().IsDark, "expected dark theme for a black COLORFGBG background")

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "")
	assert.False(t, DetectTheme().IsDark)
}

func TestThemeFor(t *testing.T) {
	t.Setenv("ARCHIWUM_DARK_MODE", "")
	t.Setenv("COLORFGBG", "")

	assert.True(t, ThemeFor("dark").IsDark)
	assert.False(t, ThemeFor("light").IsDark)
	assert.False(t, ThemeFor("auto").IsDark)
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.Contains(t, s.RenderDivider(4), "────")
	assert.NotPanics(t, func() { s.RenderDivider(-1) })
}

func TestLayoutConfig(t *testing.T) {
	wide := NewLayoutConfig(160, 40)
	assert.False(t, wide.IsCompact)
	assert.Equal(t, 156, wide.ContentWidth())
	assert.Equal(t, 40-HeaderHeight-FooterHeight-StatusBarHeight, wide.ContentHeight())
	assert.Equal(t, LabelWidth, wide.LabelColumn(0))
	assert.Equal(t, LabelWidth-2*FormIndent, wide.LabelColumn(2))

	tiny := NewLayoutConfig(20, 2)
	assert.True(t, tiny.IsCompact)
	assert.Equal(t, MinimumTerminalWidth-4, tiny.ContentWidth())
	assert.Equal(t, 1, tiny.ContentHeight())
	assert.Equal(t, 8, tiny.LabelColumn(50))
}
