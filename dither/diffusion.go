package dither

import (
	"math"

	"pgmdither/quant"
	"pgmdither/raster"
)

// ErrorDiffuser quantizes pixels one at a time and pushes each pixel's
// rounding error onto its unvisited neighbours.
//
// Pixels are visited row by row from the top, each row left to right. The
// value quantized at a pixel already contains the error received from every
// earlier pixel, so this order is part of the result and not an
// implementation detail.
type ErrorDiffuser struct {
	Kernel Kernel
}

// Stats sums absolute error amounts over one run, on the 0..1 scale.
type Stats struct {
	Generated float64 // rounding error produced by quantization
	Diffused  float64 // error added to pixels inside the raster
	Dropped   float64 // error aimed at pixels outside the raster
}

func (d ErrorDiffuser) Dither(r *raster.Raster, bits int, gamma float64) {
	d.Diffuse(r, bits, gamma)
}

// Diffuse dithers r in place and reports how the error was spent.
func (d ErrorDiffuser) Diffuse(r *raster.Raster, bits int, gamma float64) Stats {
	var stats Stats
	lc := quant.LevelCount(bits)

	buf := make([]float64, len(r.Pix))
	for i, v := range r.Pix {
		buf[i] = float64(v) / 255
	}

	for row := range r.Height {
		for col := range r.Width {
			i := r.Index(row, col)
			old := buf[i]
			v := float64(quant.Index(old, bits)) / float64(lc)
			buf[i] = v
			e := old - v
			stats.Generated += math.Abs(e)

			for _, t := range d.Kernel.taps {
				share := e * t.Weight
				tr, tc := row+t.DRow, col+t.DCol
				if !r.In(tr, tc) {
					stats.Dropped += math.Abs(share)
					continue
				}
				buf[r.Index(tr, tc)] += share
				stats.Diffused += math.Abs(share)
			}

			r.Pix[i] = quant.Commit(v*255, gamma)
		}
	}

	return stats
}
