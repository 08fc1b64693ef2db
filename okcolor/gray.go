package okcolor

import (
	"image/color"
	"math"
)

// GrayModel maps colours to 8-bit gray by their Oklab lightness, so that
// hues of equal perceived brightness end up on the same gray.
var GrayModel = color.ModelFunc(grayConvert)

func grayConvert(c color.Color) color.Color {
	if _, ok := c.(color.Gray); ok {
		return c
	}

	lc := labConvert(c).(Lab)
	// for a neutral colour L is the cube root of linear luminance
	y := fromLinear(clip(lc.L * lc.L * lc.L))
	return color.Gray{Y: uint8(math.Round(y * 255))}
}
