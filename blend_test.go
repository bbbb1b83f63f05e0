package zpad

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendColorsSwitched(t *testing.T) {
	a := color.NRGBA{R: 200, G: 40, B: 90, A: 255}
	b := color.NRGBA{R: 20, G: 180, B: 60, A: 255}
	modes := []BlendMode{BlendColor, BlendDarken, BlendLighten, BlendMultiply,
		BlendOverlay, BlendPhoenix, BlendScreen, BlendSoftLight}
	for _, m := range modes {
		assert.Equal(t, BlendColors(m, false, b, a), BlendColors(m, true, a, b), "mode %d", m)
	}
}

func TestMixTransparent(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	assert.Equal(t, color.Transparent, mix(color.Transparent, red, 0.5))
	assert.Equal(t, red, mix(red, color.Transparent, 0.5))
}

func TestTagStyle(t *testing.T) {
	test.NewApp()
	config := NewConfig()
	cell := config.SelectionStyleFunc(config.SelectionTag, widget.TextGridCell{Rune: 'x'})
	assert.Equal(t, 'x', cell.Rune)
	require.NotNil(t, cell.Style)
	assert.Equal(t, theme.SelectionColor(), cell.Style.BackgroundColor())
	assert.Equal(t, theme.ForegroundColor(), cell.Style.TextColor())

	// styling a styled cell blends with its colors
	again := config.ErrorStyleFunc(config.ErrorTag, cell)
	require.NotNil(t, again.Style)
	assert.Equal(t, BlendColors(config.BlendBG, false, cell.Style.BackgroundColor(), theme.ErrorColor()),
		again.Style.BackgroundColor())
}
