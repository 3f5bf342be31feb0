package images

import (
	"image/color"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagekit/surface"
)

// Tinted paints tint through the alpha channel of r, discarding r's colors.
// The result has the same size and scale as r and RenderingModeOriginal.
//
// Returns:
//   - The tinted raster.
//   - ErrInvalidParameter if r is empty or tint is nil.
//   - ErrRenderingFailed if the surface cannot be rendered.
func (t *Toolkit) Tinted(r *Raster, tint color.Color) (*Raster, error) {
	done := t.profiler.StartOperation("tint")
	out, err := t.tinted(r, tint)
	done(err)
	return out, err
}

func (t *Toolkit) tinted(r *Raster, tint color.Color) (*Raster, error) {
	if r.IsEmpty() {
		return nil, errors.Wrap(ErrInvalidParameter, "tint: image is empty")
	}
	if tint == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "tint: no color")
	}

	size := r.PixelSize()
	mask := r.Pixels()
	img, err := t.render(size.X, size.Y, func(s surface.Surface) error {
		return s.DrawMask(tint, mask)
	})
	if err != nil {
		t.logger.Error("tint failed", zap.Error(err))
		return nil, err
	}
	return r.derive(img).WithRenderingMode(RenderingModeOriginal), nil
}

// Rendered returns r as it would be displayed: template images are tinted with
// tint, any other image is returned unchanged.
func (t *Toolkit) Rendered(r *Raster, tint color.Color) (*Raster, error) {
	if r.RenderingMode() != RenderingModeTemplate {
		return r, nil
	}
	return t.Tinted(r, tint)
}
