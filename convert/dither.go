package convert

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"pgmdither/dither"
	"pgmdither/palette"

	"github.com/alecthomas/kong"
)

type DitherCmd struct {
	Input   string `arg:"" help:"Image to dither" type:"existingfile"`
	Output  string `arg:"" help:"Destination file"`
	Palette string `help:"Also write the gray levels of the result to this RIFF PAL file" type:"path"`

	Options
}

func (c *DitherCmd) Validate(kctx *kong.Context) error {
	input, err := filepath.Abs(c.Input)
	if err != nil {
		return fmt.Errorf("invalid input path %q: %w", c.Input, err)
	}
	c.Input = input

	if c.Output, err = filepath.Abs(c.Output); err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Output, err)
	}
	if c.Input == c.Output {
		return fmt.Errorf("refusing to overwrite the input %q", c.Input)
	}

	return c.resolve()
}

func (c *DitherCmd) Run(logger *slog.Logger) error {
	logger = logger.With("file", c.Input)

	pic, err := load(c.Input)
	if err != nil {
		return err
	}

	if pic.ras, err = c.apply(logger, pic.img); err != nil {
		return err
	}

	pal := outputPalette(c.Dither)
	format := outputFormat(c.Format, pic.format, c.Output)
	if err = save(pic, format, c.Output, pal); err != nil {
		return err
	}
	logger.Info("dithered", "to", c.Output, "format", format, "algorithm", c.Dither.Algorithm, "bits", c.Bits)

	if c.Palette != "" {
		if err = writePalette(c.Palette, pal); err != nil {
			return err
		}
		logger.Info("palette written", "palette", c.Palette, "colors", len(pal))
	}
	return nil
}

// outputPalette returns every gray a raster processed with opts can hold.
func outputPalette(opts dither.Options) color.Palette {
	if opts.Algorithm == dither.None {
		return palette.Grays()
	}
	return palette.Levels(opts.Bits, opts.Gamma)
}

func writePalette(name string, pal color.Palette) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", name, closeErr)
		}
	}()

	if _, err = palette.WriteTo(f, []color.Palette{pal}); err != nil {
		return fmt.Errorf("could not write palette file %q: %w", name, err)
	}
	return nil
}
