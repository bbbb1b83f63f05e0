package zpad

import (
	"image/color"

	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"
)

// TagStyleFunc computes the display of a cell covered by a tag.
type TagStyleFunc func(tag Tag, c widget.TextGridCell) widget.TextGridCell

// TagStyler associates a style function with all tags of a name.
type TagStyler struct {
	TagName   string
	StyleFunc TagStyleFunc
}

// tagStyle builds a style func that paints cells with bg, blending with colors the cell
// already has according to the config.
func tagStyle(z *Config, bg func() color.Color) TagStyleFunc {
	return func(tag Tag, c widget.TextGridCell) widget.TextGridCell {
		fg := theme.ForegroundColor()
		back := bg()
		if c.Style != nil {
			if c.Style.TextColor() != nil {
				fg = BlendColors(z.BlendFG, false, c.Style.TextColor(), theme.ForegroundColor())
			}
			if c.Style.BackgroundColor() != nil {
				back = BlendColors(z.BlendBG, false, c.Style.BackgroundColor(), back)
			}
		}
		return widget.TextGridCell{
			Rune:  c.Rune,
			Style: &widget.CustomTextGridStyle{FGColor: fg, BGColor: back},
		}
	}
}

func selectionStyle(z *Config) TagStyleFunc {
	return tagStyle(z, theme.SelectionColor)
}

func highlightStyle(z *Config) TagStyleFunc {
	return tagStyle(z, func() color.Color {
		return mix(theme.PrimaryColor(), theme.InputBackgroundColor(), 0.5)
	})
}

func errorStyle(z *Config) TagStyleFunc {
	return tagStyle(z, theme.ErrorColor)
}

// mix interpolates between a and b in Lab space. t=0 yields a, t=1 yields b.
// Colors that cannot be represented, such as fully transparent ones, yield a.
func mix(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return ca.BlendLab(cb, t).Clamped()
}

// caretStyle returns the cell style of the caret, the inverse of the editor's colors.
func caretStyle() widget.TextGridStyle {
	return &widget.CustomTextGridStyle{FGColor: theme.InputBackgroundColor(), BGColor: theme.ForegroundColor()}
}

// lineNumberStyle returns the style of the line number column, a muted variant of the text colors.
func lineNumberStyle() widget.TextGridStyle {
	return &widget.CustomTextGridStyle{
		FGColor: mix(theme.ForegroundColor(), theme.InputBackgroundColor(), 0.4),
		BGColor: mix(theme.InputBackgroundColor(), theme.ForegroundColor(), 0.08),
	}
}
