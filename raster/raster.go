// Package raster holds the single-channel 8-bit pixel buffer the dithering
// engine works on, plus conversions from and to the standard image types.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Raster is a row-major grid of 8-bit intensities. The pixel at (row, col)
// is Pix[row*Width+col].
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromPix wraps pix without copying it.
func FromPix(width, height int, pix []uint8) (*Raster, error) {
	r := &Raster{Width: width, Height: height, Pix: pix}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that the buffer length matches the declared dimensions.
func (r *Raster) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("invalid raster dimensions %dx%d", r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height {
		return fmt.Errorf("raster buffer holds %d bytes, %dx%d needs %d",
			len(r.Pix), r.Width, r.Height, r.Width*r.Height)
	}
	return nil
}

func (r *Raster) Index(row, col int) int {
	return row*r.Width + col
}

// In reports whether (row, col) lies inside the raster.
func (r *Raster) In(row, col int) bool {
	return row >= 0 && row < r.Height && col >= 0 && col < r.Width
}

func (r *Raster) At(row, col int) uint8 {
	return r.Pix[r.Index(row, col)]
}

func (r *Raster) Set(row, col int, v uint8) {
	r.Pix[r.Index(row, col)] = v
}

func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Gray returns an image.Gray sharing the raster's buffer.
func (r *Raster) Gray() *image.Gray {
	return &image.Gray{
		Pix:    r.Pix,
		Stride: r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// FromImage converts img to a raster using model for the colour to gray
// mapping. A nil model means color.GrayModel.
func FromImage(img image.Image, model color.Model) *Raster {
	return FromImageRect(img, img.Bounds(), model)
}

// FromImageRect converts the part of img inside b. Gray images and the
// plain gray model are copied with draw.Draw.
func FromImageRect(img image.Image, b image.Rectangle, model color.Model) *Raster {
	r := New(b.Dx(), b.Dy())

	if _, isGray := img.(*image.Gray); isGray || model == nil || model == color.GrayModel {
		draw.Draw(r.Gray(), r.Gray().Rect, img, b.Min, draw.Src)
		return r
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := r.Pix[(y-b.Min.Y)*r.Width:]
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = color.GrayModel.Convert(model.Convert(img.At(x, y))).(color.Gray).Y
		}
	}
	return r
}
