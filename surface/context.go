package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// ContextRasterizer allocates surfaces backed by a gg drawing context.
type ContextRasterizer struct {
	// Interpolation is used for stretched draws. Empty means bilinear.
	Interpolation Interpolation
	// MaxPixels bounds width*height of a single surface. Zero means
	// DefaultMaxPixels.
	MaxPixels int
}

// NewContextRasterizer returns a rasterizer using the given interpolation.
func NewContextRasterizer(interpolation Interpolation, maxPixels int) *ContextRasterizer {
	return &ContextRasterizer{
		Interpolation: interpolation,
		MaxPixels:     maxPixels,
	}
}

// NewSurface allocates a transparent width x height surface.
//
// Arguments:
//   - width: The surface width in pixels.
//   - height: The surface height in pixels.
//
// Returns:
//   - The surface, owned by the caller until Release.
//   - ErrInvalidSize if a dimension is not positive or the area is too large.
func (r *ContextRasterizer) NewSurface(width, height int) (Surface, error) {
	maxPixels := r.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > maxPixels || height > maxPixels || width > maxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidSize, width, height, maxPixels)
	}

	interpolation := r.Interpolation
	if interpolation == "" {
		interpolation = InterpolationBiLinear
	}

	return &contextSurface{
		dc:            gg.NewContext(width, height),
		interpolation: interpolation,
	}, nil
}

// contextSurface is a Surface drawing into a gg.Context.
type contextSurface struct {
	dc            *gg.Context
	interpolation Interpolation
}

func (s *contextSurface) Bounds() image.Rectangle {
	if s.dc == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, s.dc.Width(), s.dc.Height())
}

func (s *contextSurface) Fill(c color.Color) error {
	if s.dc == nil {
		return ErrReleased
	}
	s.dc.SetColor(c)
	s.dc.Clear()
	return nil
}

func (s *contextSurface) DrawImage(src image.Image, dst image.Rectangle) error {
	if s.dc == nil {
		return ErrReleased
	}
	if src == nil || src.Bounds().Empty() {
		return fmt.Errorf("surface: nothing to draw")
	}
	if dst.Empty() {
		return fmt.Errorf("%w: destination %v", ErrInvalidSize, dst)
	}

	// Unscaled draws go straight through the context.
	if src.Bounds().Size() == dst.Size() && src.Bounds().Min == (image.Point{}) {
		s.dc.DrawImage(src, dst.Min.X, dst.Min.Y)
		return nil
	}

	canvas, ok := s.dc.Image().(draw.Image)
	if !ok {
		return fmt.Errorf("surface: context image %T is not drawable", s.dc.Image())
	}
	s.interpolation.scale(canvas, dst, src)
	return nil
}

func (s *contextSurface) DrawMask(c color.Color, mask image.Image) error {
	if s.dc == nil {
		return ErrReleased
	}
	if mask == nil || mask.Bounds().Empty() {
		return fmt.Errorf("surface: empty mask")
	}

	bounds := s.Bounds()
	alpha := image.NewAlpha(bounds)
	if mask.Bounds().Size() == bounds.Size() {
		draw.Draw(alpha, bounds, mask, mask.Bounds().Min, draw.Src)
	} else {
		s.interpolation.scale(alpha, bounds, mask)
	}

	if err := s.dc.SetMask(alpha); err != nil {
		return fmt.Errorf("surface: set mask: %w", err)
	}
	defer s.dc.ResetClip()

	s.dc.SetColor(c)
	s.dc.DrawRectangle(0, 0, float64(bounds.Dx()), float64(bounds.Dy()))
	s.dc.Fill()
	return nil
}

func (s *contextSurface) Capture() (image.Image, error) {
	if s.dc == nil {
		return nil, ErrReleased
	}

	src := s.dc.Image()
	out := image.NewRGBA(src.Bounds())
	if rgba, ok := src.(*image.RGBA); ok {
		copy(out.Pix, rgba.Pix)
		return out, nil
	}
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}

func (s *contextSurface) Release() {
	s.dc = nil
}
