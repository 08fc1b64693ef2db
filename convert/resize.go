package convert

import (
	"image"
	"log/slog"
	"math"

	"pgmdither/raster"

	"golang.org/x/image/draw"
)

// layout is the outcome of fitting a source into the requested box: the
// canvas size, the part of the source that is used and where it lands.
type layout struct {
	canvas image.Rectangle
	src    image.Rectangle
	dst    image.Rectangle
	fill   bool
}

// fit computes the resize layout. A zero width or height keeps the source
// dimension. Without crop the aspect ratio is kept by shrinking the canvas,
// or by centring on a filled canvas when fill is set.
func fit(srcBounds image.Rectangle, width, height int, crop, fill bool) layout {
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	destWidth := float64(width)
	if destWidth == 0 {
		destWidth = srcWidth
	}

	destHeight := float64(height)
	if destHeight == 0 {
		destHeight = srcHeight
	}

	l := layout{
		canvas: image.Rect(0, 0, int(destWidth), int(destHeight)),
		src:    srcBounds,
		dst:    image.Rect(0, 0, int(destWidth), int(destHeight)),
	}

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
		l.src.Min.Y += dh
		l.src.Max.Y -= dh
	case crop && srcAR > destAR:
		dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
		l.src.Min.X += dw
		l.src.Max.X -= dw
	case !crop && srcAR < destAR:
		dw := destHeight * srcAR
		if !fill {
			l.canvas.Max.X = int(math.Round(dw))
			l.dst.Max.X = l.canvas.Max.X
		} else if l.fill = destWidth > dw; l.fill {
			idw := int(math.Round((destWidth - dw) / 2))
			l.dst.Min.X += idw
			l.dst.Max.X -= idw
		}
	case !crop && srcAR > destAR:
		dh := destWidth / srcAR
		if !fill {
			l.canvas.Max.Y = int(math.Round(dh))
			l.dst.Max.Y = l.canvas.Max.Y
		} else if l.fill = destHeight > dh; l.fill {
			idh := int(math.Round((destHeight - dh) / 2))
			l.dst.Min.Y += idh
			l.dst.Max.Y -= idh
		}
	}

	return l
}

func resize(logger *slog.Logger, ras *raster.Raster, width, height int, crop bool, fillGray *uint8) *raster.Raster {
	src := ras.Gray()
	if ras.Width == 0 || ras.Height == 0 {
		return ras
	}
	if (width == 0 || width == ras.Width) && (height == 0 || height == ras.Height) {
		return ras
	}

	l := fit(src.Rect, width, height, crop, fillGray != nil)
	logger.Info("resizing", "width", l.dst.Dx(), "height", l.dst.Dy())

	dest := raster.New(l.canvas.Dx(), l.canvas.Dy())
	if l.fill {
		for i := range dest.Pix {
			dest.Pix[i] = *fillGray
		}
	}
	draw.CatmullRom.Scale(dest.Gray(), l.dst, src, l.src, draw.Src, nil)

	return dest
}
