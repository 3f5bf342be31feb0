// Package surface provides off-screen drawing surfaces used to rasterize fills,
// stretched images and tint masks into new in-memory images.
package surface

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrInvalidSize is returned when a surface is requested with a
	// non-positive dimension or more pixels than the rasterizer allows.
	ErrInvalidSize = errors.New("surface: invalid size")
	// ErrReleased is returned when a released surface is drawn into or captured.
	ErrReleased = errors.New("surface: used after release")
)

// DefaultMaxPixels bounds the area of a single surface (8192x8192).
const DefaultMaxPixels = 8192 * 8192

// Surface is a drawable off-screen canvas.
//
// A Surface is owned by a single caller for the duration of one drawing
// operation and must be released once captured.
type Surface interface {
	// Bounds returns the pixel bounds of the surface.
	Bounds() image.Rectangle
	// Fill paints the whole surface with c, replacing what was there.
	Fill(c color.Color) error
	// DrawImage draws src stretched to fill dst.
	DrawImage(src image.Image, dst image.Rectangle) error
	// DrawMask paints c over the whole surface through the alpha of mask.
	DrawMask(c color.Color, mask image.Image) error
	// Capture returns a copy of the surface contents.
	Capture() (image.Image, error)
	// Release frees the surface. It is safe to call more than once.
	Release()
}

// Rasterizer allocates surfaces.
type Rasterizer interface {
	NewSurface(width, height int) (Surface, error)
}
