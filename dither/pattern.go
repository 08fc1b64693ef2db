package dither

import (
	"pgmdither/quant"
	"pgmdither/raster"
)

// Thresholder decides whether the pixel at (row, col) with intensity v is
// raised from its floor level to the next level.
type Thresholder interface {
	Bump(row, col int, v uint8) bool
}

// Pattern dithers by comparing each pixel against a threshold, without
// looking at its neighbours.
type Pattern struct {
	Threshold Thresholder
}

func (p Pattern) Dither(r *raster.Raster, bits int, gamma float64) {
	lc := quant.LevelCount(bits)
	for row := range r.Height {
		line := r.Pix[row*r.Width : (row+1)*r.Width]
		for col, v := range line {
			k := quant.Floor(v, bits)
			if p.Threshold.Bump(row, col, v) {
				k = min(k+1, lc)
			}
			line[col] = quant.Commit(quant.Value(k, bits), gamma)
		}
	}
}
