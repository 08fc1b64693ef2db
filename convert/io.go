package convert

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pgmdither/raster"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// picture is a decoded source image and, once processed, its dithered
// raster.
type picture struct {
	img    image.Image
	ras    *raster.Raster
	format string
	maxval int
}

var writable = map[string]bool{
	"pgm":  true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

var extFormats = map[string]string{
	".pgm":  "pgm",
	".png":  "png",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// load reads a graymap as is, and any other decodable image as it was
// decoded. Colour is turned into gray when the picture is dithered.
func load(name string) (*picture, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "name", name, "error", closeErr)
		}
	}()

	br := bufio.NewReader(f)
	if magic, err := br.Peek(2); err == nil && (string(magic) == "P5" || string(magic) == "P2") {
		ras, h, err := raster.DecodePGM(br)
		if err != nil {
			return nil, fmt.Errorf("could not decode graymap %q: %w", name, err)
		}
		return &picture{img: ras.Gray(), format: "pgm", maxval: h.Maxval}, nil
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", name, err)
	}
	return &picture{img: img, format: format, maxval: 255}, nil
}

// outputFormat picks the format to write. "same" follows the extension of
// destName when it has a known one, then the source format, then PNG.
func outputFormat(requested, srcFormat, destName string) string {
	if requested != "same" {
		return requested
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(destName))]; ok {
		return f
	}
	if writable[srcFormat] {
		return srcFormat
	}
	return "png"
}

// save writes pic to dest through a temporary file in the same folder, so
// that dest only appears once it is complete.
func save(pic *picture, format, dest string, pal color.Palette) (err error) {
	destDir, destName := filepath.Split(dest)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, "."+destName+"-*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	img := pic.ras.Gray()
	switch format {
	case "pgm":
		if err = raster.EncodePGM(outFile, pic.ras, pic.maxval); err != nil {
			return fmt.Errorf("could not encode PGM destination %q: %w", destName, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
		}
	case "gif":
		opts := &gif.Options{
			NumColors: len(pal),
			Quantizer: fixedQuantizer(pal),
			Drawer:    draw.Src,
		}
		if err = gif.Encode(outFile, img, opts); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	canRename = true
	return err
}

// fixedQuantizer hands the GIF encoder the gray levels the raster was
// dithered to, whatever image it is asked about.
type fixedQuantizer color.Palette

func (q fixedQuantizer) Quantize(color.Palette, image.Image) color.Palette {
	return color.Palette(q)
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
