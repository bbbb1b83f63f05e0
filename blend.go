package zpad

import (
	"image/color"

	"github.com/phrozen/blend"
)

// BlendMode determines how two layers of color are composited when tags overlap
// styled text.
type BlendMode int

const (
	BlendColor BlendMode = iota + 1
	BlendDarken
	BlendLighten
	BlendMultiply
	BlendOverlay
	BlendPhoenix
	BlendScreen
	BlendSoftLight
)

// BlendColors blends c1 over c2 with the given mode. If switched is true, c2 is blended over c1.
func BlendColors(mode BlendMode, switched bool, c1, c2 color.Color) color.Color {
	if switched {
		c1, c2 = c2, c1
	}
	switch mode {
	case BlendDarken:
		return blend.Darken(c2, c1)
	case BlendLighten:
		return blend.Lighten(c2, c1)
	case BlendMultiply:
		return blend.Multiply(c2, c1)
	case BlendOverlay:
		return blend.Overlay(c2, c1)
	case BlendPhoenix:
		return blend.Phoenix(c2, c1)
	case BlendScreen:
		return blend.Screen(c2, c1)
	case BlendSoftLight:
		return blend.SoftLight(c2, c1)
	}
	return blend.Color(c2, c1)
}
