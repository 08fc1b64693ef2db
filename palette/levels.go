// Package palette builds the gray palette produced by a dithering run and
// stores palettes in the RIFF PAL format.
package palette

import (
	"image/color"

	"pgmdither/quant"
)

// Levels returns the grays a raster dithered to bits with gamma can contain,
// darkest first. Levels that collapse onto the same byte after the gamma
// remap appear once.
func Levels(bits int, gamma float64) color.Palette {
	var pal color.Palette
	last := -1
	for k := range quant.LevelCount(bits) + 1 {
		v := quant.Commit(quant.Value(k, bits), gamma)
		if int(v) == last {
			continue
		}
		last = int(v)
		pal = append(pal, color.Gray{Y: v})
	}
	return pal
}

// Grays returns all 256 grays, for rasters that were not quantized.
func Grays() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}
	return pal
}
