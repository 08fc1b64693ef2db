package raster

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/spakin/netpbm"
	"github.com/spakin/netpbm/npcolor"
)

// Portable graymaps are read and written with netpbm, which also registers
// the "pgm" format (P5 and P2) with the image package.

var (
	ErrFormat    = errors.New("pgm: invalid header")
	ErrTruncated = errors.New("pgm: truncated pixel data")
)

// MaxPixels bounds the size a graymap header may announce.
const MaxPixels = 1 << 28

type Header struct {
	Width  int
	Height int
	Maxval int
}

// DecodePGM reads a graymap. Samples are returned as stored; a maxval below
// 255 does not rescale them. The header is checked before any pixel buffer
// is allocated.
func DecodePGM(r io.Reader) (*Raster, Header, error) {
	var h Header

	head := &bytes.Buffer{}
	cfg, err := netpbm.DecodeConfig(io.TeeReader(r, head))
	if err != nil {
		return nil, h, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	model, ok := cfg.ColorModel.(npcolor.GrayMModel)
	if !ok {
		return nil, h, fmt.Errorf("%w: not an 8-bit graymap", ErrFormat)
	}
	h = Header{Width: cfg.Width, Height: cfg.Height, Maxval: int(model.M)}

	if h.Width <= 0 || h.Height <= 0 {
		return nil, h, fmt.Errorf("%w: invalid dimensions %dx%d", ErrFormat, h.Width, h.Height)
	}
	if h.Width > MaxPixels/h.Height {
		return nil, h, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrFormat, h.Width, h.Height, MaxPixels)
	}

	img, err := netpbm.Decode(io.MultiReader(head, r), &netpbm.DecodeOptions{Target: netpbm.PGM, Exact: true})
	if err != nil {
		return nil, h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	gray, ok := img.(*netpbm.GrayM)
	if !ok {
		return nil, h, fmt.Errorf("%w: decoded as %T", ErrFormat, img)
	}

	ras, err := FromPix(h.Width, h.Height, gray.Pix)
	if err != nil {
		return nil, h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return ras, h, nil
}

// EncodePGM writes ras as a binary graymap with the given maxval. A maxval
// of 0 means 255. Samples are written as stored.
func EncodePGM(w io.Writer, ras *Raster, maxval int) error {
	if err := ras.Validate(); err != nil {
		return err
	}
	if maxval == 0 {
		maxval = 255
	}
	if maxval < 1 || maxval > 255 {
		return fmt.Errorf("unsupported maxval: %d", maxval)
	}

	img := &netpbm.GrayM{
		Pix:    ras.Pix,
		Stride: ras.Width,
		Rect:   image.Rect(0, 0, ras.Width, ras.Height),
		Model:  npcolor.GrayMModel{M: uint8(maxval)},
	}

	bw := bufio.NewWriter(w)
	opts := &netpbm.EncodeOptions{Format: netpbm.PGM, MaxValue: uint16(maxval)}
	if err := netpbm.Encode(bw, img, opts); err != nil {
		return fmt.Errorf("could not encode graymap: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush graymap: %w", err)
	}
	return nil
}
