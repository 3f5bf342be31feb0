// Package images - Raster image handle and the helpers built on it: solid
// fills, proportional resizing, lossy compression, size introspection, average
// color sampling, tinting and symbol lookup.
package images

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/nvr-ai/go-imagekit/codec"
)

// Size is a width and height in logical units. Pixel dimensions are the
// logical dimensions multiplied by a raster's scale.
type Size struct {
	// The logical width.
	Width float64 `json:"width" yaml:"width"`
	// The logical height.
	Height float64 `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are finite and positive.
func (s Size) Valid() bool {
	return validLength(s.Width) && validLength(s.Height)
}

func validLength(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// FillSpec describes a solid-color image to create.
type FillSpec struct {
	// Color fills every pixel. Nil means fully transparent.
	Color color.Color
	// Size is the logical size of the image.
	Size Size
}

// RenderingMode controls how an image is drawn when it is displayed.
type RenderingMode int

const (
	// RenderingModeAutomatic leaves the choice to the consumer.
	RenderingModeAutomatic RenderingMode = iota
	// RenderingModeOriginal always draws the image's own colors.
	RenderingModeOriginal
	// RenderingModeTemplate draws the image as an alpha mask filled with a tint.
	RenderingModeTemplate
)

func (m RenderingMode) String() string {
	switch m {
	case RenderingModeOriginal:
		return "original"
	case RenderingModeTemplate:
		return "template"
	default:
		return "automatic"
	}
}

// ColorSpace selects how channel values are combined when sampling colors.
type ColorSpace string

const (
	// ColorSpaceUnspecified defers to the toolkit's configured default.
	ColorSpaceUnspecified ColorSpace = ""
	// ColorSpaceSRGB combines gamma-encoded sRGB values as stored.
	ColorSpaceSRGB ColorSpace = "srgb"
	// ColorSpaceLinear combines linearized sRGB values.
	ColorSpaceLinear ColorSpace = "linear"
)

// Raster is an immutable in-memory image: pixels plus the scale that maps them
// to logical units.
//
// The pixels returned by Pixels must not be modified. Every operation that
// changes an image returns a new Raster.
type Raster struct {
	pixels     image.Image
	scale      float64
	mode       RenderingMode
	colorSpace ColorSpace
}

// NewRaster wraps a copy of img. A non-positive scale is treated as 1.
//
// Arguments:
//   - img: The source pixels. Nil yields an empty raster.
//   - scale: Pixels per logical unit.
//
// Returns:
//   - The new raster. Later changes to img are not visible through it.
//
// @example
// r := NewRaster(decoded, 2) // a 200x100 image is 100x50 logical units
func NewRaster(img image.Image, scale float64) *Raster {
	if !validLength(scale) {
		scale = 1
	}
	if img == nil || img.Bounds().Empty() {
		return &Raster{pixels: image.NewRGBA(image.Rectangle{}), scale: scale}
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Raster{pixels: dst, scale: scale}
}

// EmptyRaster returns the zero-sized placeholder image.
func EmptyRaster() *Raster {
	return &Raster{pixels: image.NewRGBA(image.Rectangle{}), scale: 1}
}

// Decode decodes JPEG, PNG, GIF, WebP or BMP data into a raster.
func Decode(data []byte, scale float64) (*Raster, error) {
	img, _, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if !validLength(scale) {
		scale = 1
	}
	return &Raster{pixels: img, scale: scale}, nil
}

// Pixels returns the underlying pixels. Callers must treat them as read-only.
func (r *Raster) Pixels() image.Image {
	if r == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return r.pixels
}

// Scale returns the number of pixels per logical unit.
func (r *Raster) Scale() float64 {
	if r == nil {
		return 1
	}
	return r.scale
}

// PixelSize returns the pixel dimensions.
func (r *Raster) PixelSize() image.Point {
	if r == nil || r.pixels == nil {
		return image.Point{}
	}
	return r.pixels.Bounds().Size()
}

// Size returns the logical dimensions.
func (r *Raster) Size() Size {
	p := r.PixelSize()
	s := r.Scale()
	return Size{Width: float64(p.X) / s, Height: float64(p.Y) / s}
}

// IsEmpty reports whether the raster has no pixels.
func (r *Raster) IsEmpty() bool {
	p := r.PixelSize()
	return p.X <= 0 || p.Y <= 0
}

// RenderingMode returns how the image should be drawn.
func (r *Raster) RenderingMode() RenderingMode {
	if r == nil {
		return RenderingModeAutomatic
	}
	return r.mode
}

// ColorSpace returns the image's native color space, if known.
func (r *Raster) ColorSpace() ColorSpace {
	if r == nil {
		return ColorSpaceUnspecified
	}
	return r.colorSpace
}

// WithRenderingMode returns a raster sharing r's pixels with mode m.
func (r *Raster) WithRenderingMode(m RenderingMode) *Raster {
	c := r.clone()
	c.mode = m
	return c
}

// WithColorSpace returns a raster sharing r's pixels tagged with color space cs.
func (r *Raster) WithColorSpace(cs ColorSpace) *Raster {
	c := r.clone()
	c.colorSpace = cs
	return c
}

func (r *Raster) clone() *Raster {
	if r == nil {
		return EmptyRaster()
	}
	c := *r
	return &c
}

// derive wraps newly rendered pixels, keeping r's scale and metadata.
func (r *Raster) derive(pixels image.Image) *Raster {
	c := r.clone()
	c.pixels = pixels
	return c
}
