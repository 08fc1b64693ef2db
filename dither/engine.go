// Package dither reduces the bit depth of 8-bit gray rasters with threshold
// patterns or error diffusion.
//
// A call mutates the raster it is given and assumes nothing else touches
// that raster until it returns. Calls on different rasters may run
// concurrently.
package dither

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"pgmdither/quant"
	"pgmdither/raster"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidInput     = errors.New("invalid input")
)

// Ditherer rewrites every pixel of a raster to a level of the given depth,
// applying the gamma remap as levels are written.
type Ditherer interface {
	Dither(r *raster.Raster, bits int, gamma float64)
}

type Options struct {
	Algorithm Algorithm
	Bits      int     // output depth, 1..8
	Gamma     float64 // exponent of the remap applied on write, > 0
	// Gradient replaces the raster content with a test ramp before dithering.
	Gradient bool
	// Source feeds Random. When nil each call seeds its own source from the
	// wall clock.
	Source ThresholdSource
	Logger *slog.Logger
}

func (o Options) Validate() error {
	if !o.Algorithm.Valid() {
		return fmt.Errorf("%w: unknown algorithm code %d", ErrInvalidParameter, int(o.Algorithm))
	}
	if !quant.ValidBits(o.Bits) {
		return fmt.Errorf("%w: bits %d outside [%d,%d]", ErrInvalidParameter, o.Bits, quant.MinBits, quant.MaxBits)
	}
	if !(o.Gamma > 0) || math.IsInf(o.Gamma, 0) {
		return fmt.Errorf("%w: gamma must be a positive number, got %g", ErrInvalidParameter, o.Gamma)
	}
	return nil
}

type noop struct{}

func (noop) Dither(*raster.Raster, int, float64) {}

// New returns the ditherer for alg. src is only used by Random; a nil src
// gets a clock seeded source.
func New(alg Algorithm, src ThresholdSource) (Ditherer, error) {
	switch alg {
	case None:
		return noop{}, nil
	case Ordered:
		return Pattern{Threshold: OrderedMatrix}, nil
	case Halftone:
		return Pattern{Threshold: HalftoneMatrix}, nil
	case Random:
		if src == nil {
			src = NewClockSource()
		}
		return Pattern{Threshold: randomThreshold{src: src}}, nil
	case FloydSteinberg:
		return ErrorDiffuser{Kernel: FloydSteinbergKernel}, nil
	case Jarvis:
		return ErrorDiffuser{Kernel: JarvisKernel}, nil
	case Sierra:
		return ErrorDiffuser{Kernel: SierraKernel}, nil
	case Atkinson:
		return ErrorDiffuser{Kernel: AtkinsonKernel}, nil
	}
	return nil, fmt.Errorf("%w: unknown algorithm code %d", ErrInvalidParameter, int(alg))
}

// Apply runs the selected ditherer on r in place. Parameters and the raster
// are checked before any pixel is written.
func Apply(r *raster.Raster, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidInput)
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	d, err := New(opts.Algorithm, opts.Source)
	if err != nil {
		return err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("algorithm", opts.Algorithm, "width", r.Width, "height", r.Height)

	if opts.Gradient {
		FillGradient(r)
		logger.Debug("filled test gradient")
	}

	if opts.Algorithm == None {
		return nil
	}

	if ed, ok := d.(ErrorDiffuser); ok {
		stats := ed.Diffuse(r, opts.Bits, opts.Gamma)
		logger.Debug("dithered", "bits", opts.Bits, "gamma", opts.Gamma,
			"generated", stats.Generated, "diffused", stats.Diffused, "dropped", stats.Dropped)
		return nil
	}

	d.Dither(r, opts.Bits, opts.Gamma)
	logger.Debug("dithered", "bits", opts.Bits, "gamma", opts.Gamma)
	return nil
}

// FillGradient overwrites r with a horizontal ramp, col*255/height truncated
// to a byte. The divisor is the height, not the width: on images wider than
// tall the ramp wraps around past 255.
func FillGradient(r *raster.Raster) {
	for row := range r.Height {
		line := r.Pix[row*r.Width : (row+1)*r.Width]
		for col := range line {
			line[col] = uint8(col * 255 / r.Height)
		}
	}
}
