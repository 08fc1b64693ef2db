package convert

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"

	"pgmdither/dither"
	"pgmdither/palette"
)

type LevelsCmd struct {
	Bits    int     `help:"Output bit depth (1-8)" default:"1"`
	Gamma   float64 `help:"Gamma applied to levels as they are written" default:"1"`
	Palette string  `help:"Write the levels to this RIFF PAL file" type:"path"`
	From    string  `help:"Print the grays stored in this RIFF PAL file instead, one palette per line" type:"existingfile"`

	Out io.Writer `kong:"-"`
}

func (c *LevelsCmd) Validate() error {
	return dither.Options{Algorithm: dither.Ordered, Bits: c.Bits, Gamma: c.Gamma}.Validate()
}

func (c *LevelsCmd) Run(logger *slog.Logger) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	if c.From != "" {
		pals, err := readPalettes(c.From)
		if err != nil {
			return err
		}
		for _, pal := range pals {
			if err = printGrays(out, pal); err != nil {
				return err
			}
		}
		logger.Debug("palettes read", "palette", c.From, "count", len(pals))
		return nil
	}

	pal := palette.Levels(c.Bits, c.Gamma)
	if err := printGrays(out, pal); err != nil {
		return err
	}

	if c.Palette != "" {
		if err := writePalette(c.Palette, pal); err != nil {
			return err
		}
		logger.Info("palette written", "palette", c.Palette, "colors", len(pal))
	}
	return nil
}

// printGrays prints the gray value of every entry of pal on one line.
func printGrays(w io.Writer, pal color.Palette) error {
	values := make([]string, len(pal))
	for i, col := range pal {
		values[i] = fmt.Sprint(color.GrayModel.Convert(col).(color.Gray).Y)
	}
	if _, err := fmt.Fprintln(w, strings.Join(values, " ")); err != nil {
		return fmt.Errorf("could not print levels: %w", err)
	}
	return nil
}

func readPalettes(name string) ([]color.Palette, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := palette.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
	}
	return pals, nil
}
