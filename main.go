package main

import (
	"log/slog"

	"pgmdither/convert"
	"pgmdither/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Verbose bool `help:"Log debug messages" short:"v"`
	Workers int  `help:"Number of images processed in parallel by batch, 0 for one per CPU" default:"0"`

	Dither convert.DitherCmd `cmd:"" help:"Reduce the bit depth of a single image"`
	Batch  convert.BatchCmd  `cmd:"" help:"Reduce the bit depth of every image in a folder"`
	Levels convert.LevelsCmd `cmd:"" help:"Print the gray levels of a bit depth and gamma"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pgmdither"),
		kong.Description("Bit depth reduction of gray images with ordered, random and error diffusion dithering."),
		kong.UsageOnError(),
	)

	if c.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	pool := parallel.Start(c.Workers)
	err := kctx.Run(slog.Default(), pool.Do, pool.Wait)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
