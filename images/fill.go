package images

import (
	"image/color"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagekit/surface"
)

// NewFilled creates an image of spec.Size with every pixel set to spec.Color.
//
// The image uses the toolkit's configured scale. If the size is invalid or
// the surface cannot be rendered, the zero-sized EmptyRaster placeholder is
// returned and the failure is logged; NewFilled never fails outright.
//
// Arguments:
//   - spec: The fill color and logical size.
//
// Returns:
//   - The filled raster, or EmptyRaster on failure.
//
// @example
// swatch := kit.NewFilled(images.FillSpec{Color: color.RGBA{R: 255, A: 255}, Size: images.Size{Width: 16, Height: 16}})
func (t *Toolkit) NewFilled(spec FillSpec) *Raster {
	done := t.profiler.StartOperation("fill")

	fill := spec.Color
	if fill == nil {
		fill = color.Transparent
	}

	scale := t.config.Scale
	width, height := toPixels(spec.Size.Width, scale), toPixels(spec.Size.Height, scale)
	if !spec.Size.Valid() || width <= 0 || height <= 0 {
		err := errors.Wrapf(ErrInvalidParameter, "fill size %vx%v", spec.Size.Width, spec.Size.Height)
		done(err)
		t.logger.Warn("fill: returning empty image", zap.Error(err))
		return EmptyRaster()
	}

	img, err := t.render(width, height, func(s surface.Surface) error {
		return s.Fill(fill)
	})
	done(err)
	if err != nil {
		t.logger.Warn("fill: returning empty image", zap.Error(err))
		return EmptyRaster()
	}

	t.logger.Debug("fill", zap.Int("width", width), zap.Int("height", height))
	return &Raster{pixels: img, scale: scale}
}
