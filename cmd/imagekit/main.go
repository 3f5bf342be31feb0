// Command imagekit runs the image toolkit operations over files.
//
//	imagekit -op fill -width 64 -height 64 -color '#ff8800' -out swatch.jpg
//	imagekit -op resize -in photo.jpg -width 320 -out thumb.jpg
//	imagekit -op compress -in photo.png -quality 0.4 -out photo.jpg
//	imagekit -op size -in photo.png
//	imagekit -op average -in photo.png
//	imagekit -op tint -in icon.png -color '#0066ff' -out icon-blue.png
//	imagekit -op symbol -symbols ./icons -name star -width 24 -out star.png
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagekit/images"
	"github.com/nvr-ai/go-imagekit/logging"
	"github.com/nvr-ai/go-imagekit/profiler"
)

// Supported operations
var operations = []string{"fill", "resize", "compress", "size", "average", "tint", "symbol"}

// Options holds the parsed command line.
type Options struct {
	Op         string
	ConfigPath string
	In         string
	Out        string
	Width      float64
	Height     float64
	Color      string
	Quality    float64
	SymbolsDir string
	Symbol     string
	Profile    bool
}

func main() {
	var opts Options
	flag.StringVar(&opts.Op, "op", "", "Operation: "+strings.Join(operations, ", "))
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
	flag.StringVar(&opts.In, "in", "", "Input image file")
	flag.StringVar(&opts.Out, "out", "", "Output image file (.jpg, .jpeg or .png)")
	flag.Float64Var(&opts.Width, "width", 0, "Width in logical units")
	flag.Float64Var(&opts.Height, "height", 0, "Height in logical units (fill only)")
	flag.StringVar(&opts.Color, "color", "", "Hex color for fill and tint (default black); tints template symbols when set")
	flag.Float64Var(&opts.Quality, "quality", -1, "Compression quality in [0, 1]; default from config")
	flag.StringVar(&opts.SymbolsDir, "symbols", "", "Directory of symbol images")
	flag.StringVar(&opts.Symbol, "name", "", "Symbol name")
	flag.BoolVar(&opts.Profile, "profile", false, "Log operation timings on exit")
	flag.Parse()

	if err := validateFlags(opts); err != nil {
		fmt.Fprintf(os.Stderr, "imagekit: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg := images.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = images.LoadConfig(opts.ConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "imagekit: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imagekit: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	prof := profiler.New(0)
	kit, err := images.New(cfg, images.WithLogger(logger), images.WithProfiler(prof))
	if err != nil {
		logger.Fatal("create toolkit", zap.Error(err))
	}

	if err := run(kit, opts, logger); err != nil {
		logger.Error("operation failed", zap.String("op", opts.Op), zap.Error(err))
		os.Exit(1)
	}

	if opts.Profile {
		prof.Report(logger)
	}
}

// validateFlags checks that the flags needed by the chosen operation are set.
func validateFlags(opts Options) error {
	known := false
	for _, op := range operations {
		if opts.Op == op {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown operation %q", opts.Op)
	}

	needsIn := opts.Op != "fill" && opts.Op != "symbol"
	needsOut := opts.Op != "size" && opts.Op != "average"
	switch {
	case needsIn && opts.In == "":
		return fmt.Errorf("-in is required for %s", opts.Op)
	case needsOut && opts.Out == "":
		return fmt.Errorf("-out is required for %s", opts.Op)
	case opts.Op == "symbol" && (opts.SymbolsDir == "" || opts.Symbol == ""):
		return fmt.Errorf("-symbols and -name are required for symbol")
	}
	return nil
}

func run(kit *images.Toolkit, opts Options, logger *zap.Logger) error {
	scale := kit.Config().Scale

	switch opts.Op {
	case "fill":
		c, err := parseColor(colorOrBlack(opts.Color))
		if err != nil {
			return err
		}
		r := kit.NewFilled(images.FillSpec{Color: c, Size: images.Size{Width: opts.Width, Height: opts.Height}})
		if r.IsEmpty() {
			return errors.Wrap(images.ErrRenderingFailed, "fill produced an empty image")
		}
		return writeImage(kit, r, opts)

	case "symbol":
		catalog, err := images.LoadSymbolCatalog(opts.SymbolsDir, scale)
		if err != nil {
			return err
		}
		r, err := kit.Symbol(catalog, opts.Symbol, opts.Width)
		if err != nil {
			return err
		}
		if opts.Color != "" {
			c, err := parseColor(opts.Color)
			if err != nil {
				return err
			}
			if r, err = kit.Rendered(r, c); err != nil {
				return err
			}
		}
		return writeImage(kit, r, opts)
	}

	data, err := os.ReadFile(opts.In)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	src, err := images.Decode(data, scale)
	if err != nil {
		return errors.Wrap(err, "decode input")
	}

	switch opts.Op {
	case "resize":
		r, err := kit.Resize(src, opts.Width)
		if err != nil {
			return err
		}
		return writeImage(kit, r, opts)

	case "compress":
		return writeImage(kit, src, opts)

	case "size":
		bytes := kit.ByteSize(src)
		logger.Info("size",
			zap.Int("bytes", bytes),
			zap.Int("kilobytes", kit.KilobyteSize(src)),
			zap.String("human", profiler.FormatBytes(uint64(bytes))),
		)
		fmt.Println(bytes)
		return nil

	case "average":
		c, err := kit.AverageColor(src)
		if err != nil {
			return err
		}
		fmt.Printf("%s alpha=%.3f\n", c.Hex(), c.A)
		return nil

	case "tint":
		c, err := parseColor(colorOrBlack(opts.Color))
		if err != nil {
			return err
		}
		r, err := kit.Tinted(src, c)
		if err != nil {
			return err
		}
		return writeImage(kit, r, opts)
	}

	return fmt.Errorf("unknown operation %q", opts.Op)
}

func colorOrBlack(hex string) string {
	if hex == "" {
		return "#000000"
	}
	return hex
}

// parseColor parses #rrggbb into an opaque color.
func parseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrapf(err, "parse color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// writeImage stores r as PNG or, for any other extension, compressed with the
// toolkit's lossy encoder.
func writeImage(kit *images.Toolkit, r *images.Raster, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	if strings.EqualFold(filepath.Ext(opts.Out), ".png") {
		f, err := os.Create(opts.Out)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		return png.Encode(f, r.Pixels())
	}

	var (
		data []byte
		err  error
	)
	if opts.Quality >= 0 {
		data, err = kit.Compress(r, opts.Quality)
	} else {
		data, err = kit.CompressDefault(r)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(opts.Out, data, 0o644)
}
