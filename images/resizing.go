package images

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagekit/surface"
)

// Resize scales r to targetWidth logical units, preserving its aspect ratio.
//
// The height becomes height * targetWidth / width, rounded to the nearest
// pixel and never below one. The source is redrawn with the configured
// interpolation even when the width is unchanged, so pixel values may drift
// slightly. The result keeps r's scale, rendering mode and color space.
//
// Arguments:
//   - r: The source image. It is not modified.
//   - targetWidth: The output width in logical units.
//
// Returns:
//   - The resized raster.
//   - ErrInvalidParameter if r is empty or targetWidth is not positive.
//   - ErrRenderingFailed if the surface cannot be rendered.
//
// @example
// thumb, err := kit.Resize(photo, 320)
func (t *Toolkit) Resize(r *Raster, targetWidth float64) (*Raster, error) {
	done := t.profiler.StartOperation("resize")
	out, err := t.resize(r, targetWidth)
	done(err)
	return out, err
}

func (t *Toolkit) resize(r *Raster, targetWidth float64) (*Raster, error) {
	if r.IsEmpty() {
		return nil, errors.Wrap(ErrInvalidParameter, "resize: source image is empty")
	}
	if !validLength(targetWidth) {
		return nil, errors.Wrapf(ErrInvalidParameter, "resize: target width %v", targetWidth)
	}

	size := r.Size()
	ratio := targetWidth / size.Width
	targetHeight := size.Height * ratio

	width := toPixels(targetWidth, r.Scale())
	if width < 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "resize: target width %v is below one pixel", targetWidth)
	}
	height := max(1, toPixels(targetHeight, r.Scale()))

	src := r.Pixels()
	img, err := t.render(width, height, func(s surface.Surface) error {
		return s.DrawImage(src, s.Bounds())
	})
	if err != nil {
		t.logger.Error("resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
		return nil, err
	}

	t.logger.Debug("resize",
		zap.Int("srcWidth", r.PixelSize().X),
		zap.Int("srcHeight", r.PixelSize().Y),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return r.derive(img), nil
}
