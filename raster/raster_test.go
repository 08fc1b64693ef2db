package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromPixMismatch(t *testing.T) {
	if _, err := FromPix(3, 2, make([]uint8, 5)); err == nil {
		t.Error("expected an error for a short buffer")
	}
	if _, err := FromPix(-1, 2, nil); err == nil {
		t.Error("expected an error for a negative width")
	}
	r, err := FromPix(3, 2, make([]uint8, 6))
	if err != nil {
		t.Fatal(err)
	}
	r.Set(1, 2, 9)
	if r.Pix[5] != 9 || r.At(1, 2) != 9 {
		t.Errorf("Set/At do not address row-major storage: %v", r.Pix)
	}
}

func TestIn(t *testing.T) {
	r := New(4, 3)
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{2, 3, true},
		{-1, 0, false},
		{0, -1, false},
		{3, 0, false},
		{0, 4, false},
	}
	for _, c := range cases {
		if got := r.In(c.row, c.col); got != c.want {
			t.Errorf("In(%d, %d) = %t", c.row, c.col, got)
		}
	}
}

func TestGraySharesBuffer(t *testing.T) {
	r := New(2, 2)
	g := r.Gray()
	g.SetGray(1, 0, color.Gray{Y: 200})
	if r.At(0, 1) != 200 {
		t.Errorf("gray view does not share pixels: %v", r.Pix)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 11))
	src.Set(10, 10, color.RGBA{255, 255, 255, 255})
	src.Set(11, 10, color.RGBA{0, 0, 0, 255})

	r := FromImage(src, nil)
	if d := cmp.Diff([]uint8{255, 0}, r.Pix); d != "" {
		t.Errorf("pixels (-want +got):\n%s", d)
	}

	half := color.ModelFunc(func(c color.Color) color.Color {
		y := color.GrayModel.Convert(c).(color.Gray).Y
		return color.Gray{Y: y / 2}
	})
	r = FromImage(src, half)
	if d := cmp.Diff([]uint8{127, 0}, r.Pix); d != "" {
		t.Errorf("pixels with custom model (-want +got):\n%s", d)
	}
}

func TestPGMRoundTrip(t *testing.T) {
	r := New(3, 2)
	copy(r.Pix, []uint8{0, 10, 20, 30, 40, 50})

	buf := &bytes.Buffer{}
	if err := EncodePGM(buf, r, 200); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "P5\n3 2\n200\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}

	got, h, err := DecodePGM(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Header{Width: 3, Height: 2, Maxval: 200}, h); d != "" {
		t.Errorf("header (-want +got):\n%s", d)
	}
	if d := cmp.Diff(r, got); d != "" {
		t.Errorf("raster (-want +got):\n%s", d)
	}
}

func TestDecodePGMComments(t *testing.T) {
	in := "P5 # written by hand\n2\t1\n# max\n255\n\x07\x08"
	r, _, err := DecodePGM(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint8{7, 8}, r.Pix); d != "" {
		t.Errorf("pixels (-want +got):\n%s", d)
	}
}

func TestDecodePGMErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"magic", "P6\n1 1\n255\n\x00", ErrFormat},
		{"empty", "", ErrFormat},
		{"width", "P5\nx 1\n255\n\x00", ErrFormat},
		{"zero", "P5\n0 1\n255\n", ErrFormat},
		{"maxval", "P5\n1 1\n65535\n\x00\x00", ErrFormat},
		{"short", "P5\n2 2\n255\n\x00\x00\x00", ErrTruncated},
		{"bitmap", "P4\n8 1\n\x00", ErrFormat},
		{"oversized", "P5\n100000 100000\n255\n\x00", ErrFormat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := DecodePGM(strings.NewReader(c.in))
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestDecodePGMPlain(t *testing.T) {
	r, h, err := DecodePGM(strings.NewReader("P2\n3 1\n15\n0 7\n15\n"))
	if err != nil {
		t.Fatal(err)
	}
	if h.Maxval != 15 {
		t.Errorf("maxval = %d", h.Maxval)
	}
	if d := cmp.Diff([]uint8{0, 7, 15}, r.Pix); d != "" {
		t.Errorf("pixels (-want +got):\n%s", d)
	}
}

func TestEncodePGMKeepsSamples(t *testing.T) {
	r := New(2, 1)
	copy(r.Pix, []uint8{1, 255})

	buf := &bytes.Buffer{}
	if err := EncodePGM(buf, r, 1); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff("P5\n2 1\n1\n\x01\xff", buf.String()); d != "" {
		t.Errorf("stream (-want +got):\n%s", d)
	}
	if err := EncodePGM(buf, r, 256); err == nil {
		t.Error("expected an error for maxval 256")
	}
}

func TestImageDecodeRegistered(t *testing.T) {
	img, format, err := image.Decode(strings.NewReader("P5\n2 1\n255\n\x01\x02"))
	if err != nil {
		t.Fatal(err)
	}
	if format != "pgm" {
		t.Errorf("format = %q", format)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("bounds = %v", img.Bounds())
	}

	conf, _, err := image.DecodeConfig(strings.NewReader("P5\n7 5\n255\n"))
	if err != nil {
		t.Fatal(err)
	}
	if conf.Width != 7 || conf.Height != 5 {
		t.Errorf("config = %+v", conf)
	}
}
