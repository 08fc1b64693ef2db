package dither

import (
	"image"
	"image/color"
	"log/slog"

	"pgmdither/raster"

	"golang.org/x/image/draw"
)

// Drawer adapts the engine to draw.Drawer. The source is converted to gray
// with the drawer's colour model, dithered, and the result is copied to the
// destination with draw.Src.
//
// A Drawer is not safe for concurrent use; Err reports on the last Draw.
type Drawer struct {
	opts  Options
	model color.Model
	err   error
}

var _ draw.Drawer = (*Drawer)(nil)

// NewDrawer validates opts. A nil model means color.GrayModel.
func NewDrawer(opts Options, model color.Model) (*Drawer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Drawer{opts: opts, model: model}, nil
}

func (d *Drawer) Draw(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	d.err = nil

	clipped := r.Intersect(dst.Bounds())
	sp = sp.Add(clipped.Min.Sub(r.Min))
	sr := image.Rectangle{Min: sp, Max: sp.Add(clipped.Size())}.Intersect(src.Bounds())
	if sr.Empty() {
		return
	}
	r = image.Rectangle{Min: clipped.Min.Add(sr.Min.Sub(sp)), Max: clipped.Min.Add(sr.Max.Sub(sp))}

	ras := raster.FromImageRect(src, sr, d.model)
	if d.err = Apply(ras, d.opts); d.err != nil {
		logger := d.opts.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("could not dither", "error", d.err)
		return
	}

	draw.Draw(dst, r, ras.Gray(), image.Point{}, draw.Src)
}

// Err returns the error that stopped the last Draw, if any.
func (d *Drawer) Err() error {
	return d.err
}
