package images

import (
	"fmt"
	"image"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagekit/codec"
	"github.com/nvr-ai/go-imagekit/profiler"
	"github.com/nvr-ai/go-imagekit/surface"
)

// Toolkit runs image operations against a rasterizer and a lossy encoder.
//
// A Toolkit holds no per-call state; every operation acquires and releases its
// own drawing surface, so one Toolkit may be shared between goroutines.
type Toolkit struct {
	config     Config
	rasterizer surface.Rasterizer
	encoder    codec.Encoder
	logger     *zap.Logger
	profiler   *profiler.Profiler
}

// Option customises a Toolkit.
type Option func(*Toolkit)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Toolkit) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRasterizer replaces the configured gg-backed rasterizer.
func WithRasterizer(r surface.Rasterizer) Option {
	return func(t *Toolkit) {
		if r != nil {
			t.rasterizer = r
		}
	}
}

// WithEncoder replaces the configured lossy encoder.
func WithEncoder(e codec.Encoder) Option {
	return func(t *Toolkit) {
		if e != nil {
			t.encoder = e
		}
	}
}

// WithProfiler records operation timings and encoded sizes into p.
func WithProfiler(p *profiler.Profiler) Option {
	return func(t *Toolkit) {
		t.profiler = p
	}
}

// New creates a toolkit from a validated configuration.
//
// Arguments:
//   - config: The rendering and encoding configuration.
//   - opts: Optional overrides for logger, rasterizer, encoder and profiler.
//
// Returns:
//   - The toolkit.
//   - error if the configuration is invalid.
//
// @example
//
//	kit, err := images.New(images.DefaultConfig(), images.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	thumb, err := kit.Resize(photo, 320)
func New(config Config, opts ...Option) (*Toolkit, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	encoder, err := codec.NewEncoder(config.Format)
	if err != nil {
		return nil, errors.Wrap(err, "create encoder")
	}

	t := &Toolkit{
		config:     config,
		rasterizer: surface.NewContextRasterizer(config.Interpolation, config.MaxPixels),
		encoder:    encoder,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Default returns a toolkit using DefaultConfig.
func Default(opts ...Option) *Toolkit {
	t, err := New(DefaultConfig(), opts...)
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return t
}

// Config returns the toolkit's configuration.
func (t *Toolkit) Config() Config {
	return t.config
}

// toPixels converts a logical length to whole pixels at the given scale.
// Lengths beyond the int32 range saturate so the rasterizer rejects them.
func toPixels(length, scale float64) int {
	v := math.Round(length * scale)
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

// render allocates a width x height surface, lets paint draw into it and
// captures the result. The surface is released on every path.
func (t *Toolkit) render(width, height int, paint func(surface.Surface) error) (image.Image, error) {
	s, err := t.rasterizer.NewSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: allocate %dx%d surface: %w", ErrRenderingFailed, width, height, err)
	}
	if s == nil {
		return nil, errors.Wrapf(ErrRenderingFailed, "allocate %dx%d surface: no surface", width, height)
	}
	defer s.Release()

	if err := paint(s); err != nil {
		return nil, fmt.Errorf("%w: draw: %w", ErrRenderingFailed, err)
	}

	img, err := s.Capture()
	if err != nil {
		return nil, fmt.Errorf("%w: capture: %w", ErrRenderingFailed, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrRenderingFailed, "capture: no image")
	}
	return img, nil
}
