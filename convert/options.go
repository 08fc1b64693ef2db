// Package convert implements the command line operations: dithering a single
// image, a folder of images, and listing the gray levels of a bit depth.
package convert

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"pgmdither/dither"
	"pgmdither/okcolor"
	"pgmdither/raster"
)

// Options are the dithering flags shared by the dither and batch commands.
type Options struct {
	Algorithm string  `help:"Dithering algorithm: none, ordered, random, floyd-steinberg, jarvis, sierra, atkinson, halftone, or its code 0-7" default:"floyd-steinberg" group:"dither"`
	Bits      int     `help:"Output bit depth (1-8)" default:"1" group:"dither"`
	Gamma     float64 `help:"Gamma applied to levels as they are written" default:"1" group:"dither"`
	Gradient  bool    `help:"Replace the image content with a test gradient before dithering" default:"false" group:"dither"`
	Seed      uint64  `help:"Seed for random dithering, 0 seeds from the clock" group:"dither"`
	Gray      string  `help:"Colour to gray conversion for non-gray inputs" enum:"luma,oklab" default:"luma" group:"dither"`

	Resize bool   `help:"Resize image" default:"false" group:"resize"`
	Width  int    `help:"Max width" group:"resize"`
	Height int    `help:"Max height" group:"resize"`
	Crop   bool   `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill   string `help:"If given and not cropping, fill the background with this gray (0-255, #RGB or #RRGGBB) to keep the requested size" group:"resize"`

	Format string `help:"Output format. 'same' keeps the input format when it can be written, PNG otherwise" enum:"same,pgm,png,gif,bmp,tiff" default:"same"`

	Dither    dither.Options `kong:"-"`
	GrayModel color.Model    `kong:"-"`
	FillGray  *uint8         `kong:"-"`
}

func (o *Options) resolve() error {
	alg, err := dither.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	o.Dither = dither.Options{
		Algorithm: alg,
		Bits:      o.Bits,
		Gamma:     o.Gamma,
		Gradient:  o.Gradient,
	}
	if err := o.Dither.Validate(); err != nil {
		return err
	}

	switch o.Gray {
	case "oklab":
		o.GrayModel = okcolor.GrayModel
	default:
		o.GrayModel = color.GrayModel
	}

	if o.Resize {
		switch {
		case (o.Width < 0):
			return fmt.Errorf("invalid resize width: %d", o.Width)
		case (o.Height < 0):
			return fmt.Errorf("invalid resize height: %d", o.Height)
		case (o.Width == 0) && (o.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if (!o.Crop) && (o.Fill != "") {
		c, err := parseFill(o.Fill)
		if err != nil {
			return err
		}
		y := o.GrayModel.Convert(c).(color.Gray).Y
		o.FillGray = &y
	}

	return nil
}

// source returns the threshold source for one image. Each image gets its
// own so that concurrent runs do not share state.
func (o *Options) source() dither.ThresholdSource {
	if o.Seed == 0 {
		return nil
	}
	return dither.NewRandSource(o.Seed)
}

// apply converts src to gray, resizes and dithers it according to the
// options.
func (o *Options) apply(logger *slog.Logger, src image.Image) (*raster.Raster, error) {
	if o.Resize {
		ras := resize(logger, raster.FromImage(src, o.GrayModel), o.Width, o.Height, o.Crop, o.FillGray)
		src = ras.Gray()
	}

	opts := o.Dither
	opts.Source = o.source()
	opts.Logger = logger
	d, err := dither.NewDrawer(opts, o.GrayModel)
	if err != nil {
		return nil, fmt.Errorf("could not dither: %w", err)
	}

	b := src.Bounds()
	dst := raster.New(b.Dx(), b.Dy())
	d.Draw(dst.Gray(), dst.Gray().Rect, src, b.Min)
	if err = d.Err(); err != nil {
		return nil, fmt.Errorf("could not dither: %w", err)
	}
	return dst, nil
}

func parseFill(s string) (color.Color, error) {
	if !strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid fill gray %q: %w", s, err)
		}
		return color.Gray{Y: uint8(v)}, nil
	}

	c := color.RGBA{A: 0xff}
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}
	default:
		return nil, fmt.Errorf("invalid fill color, should be a gray value, #RGB or #RRGGBB")
	}

	return c, nil
}
