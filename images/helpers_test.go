package images

import (
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nvr-ai/go-imagekit/codec"
	"github.com/nvr-ai/go-imagekit/surface"
)

func getTestImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// noisyImage returns a deterministic image with enough detail for the
// encoder to show a quality-dependent size.
func noisyImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*31 + y*17 + x*y) % 256)
			img.Set(x, y, color.RGBA{R: v, G: 255 - v, B: uint8((x ^ y) * 7 % 256), A: 255})
		}
	}
	return img
}

// assertColorNear checks each 16-bit channel of got is within 1/255 of want.
func assertColorNear(t *testing.T, want, got color.Color, msgAndArgs ...interface{}) {
	t.Helper()
	wr, wg, wb, wa := want.RGBA()
	gr, gg, gb, ga := got.RGBA()
	const tol = 0x101
	assert.InDelta(t, wr, gr, tol, msgAndArgs...)
	assert.InDelta(t, wg, gg, tol, msgAndArgs...)
	assert.InDelta(t, wb, gb, tol, msgAndArgs...)
	assert.InDelta(t, wa, ga, tol, msgAndArgs...)
}

type mockRasterizer struct {
	mock.Mock
}

func (m *mockRasterizer) NewSurface(width, height int) (surface.Surface, error) {
	args := m.Called(width, height)
	s, _ := args.Get(0).(surface.Surface)
	return s, args.Error(1)
}

type mockSurface struct {
	mock.Mock
}

func (m *mockSurface) Bounds() image.Rectangle {
	return m.Called().Get(0).(image.Rectangle)
}

func (m *mockSurface) Fill(c color.Color) error {
	return m.Called(c).Error(0)
}

func (m *mockSurface) DrawImage(src image.Image, dst image.Rectangle) error {
	return m.Called(src, dst).Error(0)
}

func (m *mockSurface) DrawMask(c color.Color, mask image.Image) error {
	return m.Called(c, mask).Error(0)
}

func (m *mockSurface) Capture() (image.Image, error) {
	args := m.Called()
	img, _ := args.Get(0).(image.Image)
	return img, args.Error(1)
}

func (m *mockSurface) Release() {
	m.Called()
}

type mockEncoder struct {
	mock.Mock
}

func (m *mockEncoder) Encode(w io.Writer, img image.Image, quality float64) error {
	return m.Called(w, img, quality).Error(0)
}

func (m *mockEncoder) Format() codec.Format {
	return codec.FormatJPEG
}
