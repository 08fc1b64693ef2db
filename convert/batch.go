package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pgmdither/parallel"

	"github.com/alecthomas/kong"
)

type BatchCmd struct {
	Scan string `help:"Source folder to scan" default:"."`
	Dest string `help:"Destination folder for dithered pictures. Relative to scan dir if not absolute" default:"dithered"`

	Options
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	if c.Dest == c.Scan {
		return fmt.Errorf("destination must differ from the scanned folder")
	}

	return c.resolve()
}

func (c *BatchCmd) Run(logger *slog.Logger, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pal := outputPalette(c.Dither)
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() error {
			return func() error {
				filePath := filepath.Join(c.Scan, fileName)
				fileLog := logger.With("file", filePath)

				pic, err := load(filePath)
				if err != nil {
					fileLog.Error("could not read image", "error", err)
					return err
				}

				if pic.ras, err = c.apply(fileLog, pic.img); err != nil {
					fileLog.Error("could not process image", "error", err)
					return err
				}

				format := outputFormat(c.Format, pic.format, "")
				base := fileName[:len(fileName)-len(filepath.Ext(fileName))]
				dest := filepath.Join(c.Dest, base+"."+format)
				if err = save(pic, format, dest, pal); err != nil {
					fileLog.Error("could not save image", "dir", c.Dest, "error", err)
					return err
				}
				fileLog.Debug("saved", "to", dest)
				return nil
			}
		}(file.Name()))
	}

	stats := wait(true)
	logger.Info("stats", "processed", stats.Processed, "errors", stats.Failed, "total", stats.Total())

	if stats.Failed > 0 {
		return fmt.Errorf("error processing %d files", stats.Failed)
	}
	return nil
}
