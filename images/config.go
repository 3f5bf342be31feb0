package images

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-imagekit/codec"
	"github.com/nvr-ai/go-imagekit/logging"
	"github.com/nvr-ai/go-imagekit/surface"
)

// DefaultQuality is the compression quality used when none is given.
const DefaultQuality = 0.5

// Config defines how a Toolkit renders and encodes images.
type Config struct {
	// Quality is the default lossy compression quality.
	Quality float64 `json:"quality" yaml:"quality" validate:"gte=0,lte=1"`
	// Format is the lossy encoder used by Compress.
	Format codec.Format `json:"format" yaml:"format" validate:"oneof=jpeg webp"`
	// Interpolation is used when images are drawn stretched.
	Interpolation surface.Interpolation `json:"interpolation" yaml:"interpolation" validate:"oneof=nearest approx-bilinear bilinear catmull-rom lanczos"`
	// ColorSpace is used by AverageColor when an image has no native one.
	ColorSpace ColorSpace `json:"colorSpace" yaml:"colorSpace" validate:"oneof=srgb linear"`
	// Scale is the pixels-per-unit factor of filled images.
	Scale float64 `json:"scale" yaml:"scale" validate:"gt=0"`
	// MaxPixels bounds the area of a single drawing surface.
	MaxPixels int `json:"maxPixels" yaml:"maxPixels" validate:"gt=0"`
	// Log configures the CLI logger.
	Log logging.Options `json:"log" yaml:"log"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Quality:       DefaultQuality,
		Format:        codec.FormatJPEG,
		Interpolation: surface.InterpolationBiLinear,
		ColorSpace:    ColorSpaceSRGB,
		Scale:         1,
		MaxPixels:     surface.DefaultMaxPixels,
		Log:           logging.Options{Level: "info"},
	}
}

var validate = validator.New()

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// DefaultConfig values.
//
// Arguments:
//   - path: The YAML file to read.
//
// Returns:
//   - The validated configuration.
//   - error if the file cannot be read, parsed or validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
