package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// assertNear checks every channel of got is within tol of want on the 8-bit scale.
func assertNear(t *testing.T, want, got color.Color, tol int) {
	t.Helper()
	w := color.RGBAModel.Convert(want).(color.RGBA)
	g := color.RGBAModel.Convert(got).(color.RGBA)
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.LessOrEqual(t, diff(w.R, g.R), tol, "red: want %v got %v", w, g)
	assert.LessOrEqual(t, diff(w.G, g.G), tol, "green: want %v got %v", w, g)
	assert.LessOrEqual(t, diff(w.B, g.B), tol, "blue: want %v got %v", w, g)
	assert.LessOrEqual(t, diff(w.A, g.A), tol, "alpha: want %v got %v", w, g)
}

func TestNewSurfaceRejectsInvalidSizes(t *testing.T) {
	r := NewContextRasterizer(InterpolationBiLinear, 100)

	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 5},
		{"too many pixels", 20, 20},
		{"huge width", 1 << 32, 1 << 32},
		{"area overflows int64", 1 << 40, 1 << 40},
		{"one huge side", 1 << 31, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.NewSurface(tt.width, tt.height)
			assert.ErrorIs(t, err, ErrInvalidSize)
			assert.Nil(t, s)
		})
	}
}

func TestFillAndCapture(t *testing.T) {
	r := NewContextRasterizer("", 0)
	s, err := r.NewSurface(8, 4)
	require.NoError(t, err)
	defer s.Release()

	want := color.RGBA{R: 10, G: 200, B: 30, A: 255}
	require.NoError(t, s.Fill(want))

	img, err := s.Capture()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, want, color.RGBAModel.Convert(img.At(x, y)))
		}
	}
}

func TestCaptureIsDetached(t *testing.T) {
	r := NewContextRasterizer("", 0)
	s, err := r.NewSurface(2, 2)
	require.NoError(t, err)
	defer s.Release()

	require.NoError(t, s.Fill(color.RGBA{A: 255}))
	first, err := s.Capture()
	require.NoError(t, err)

	require.NoError(t, s.Fill(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, color.RGBA{A: 255}, color.RGBAModel.Convert(first.At(0, 0)))
}

func TestDrawImageStretches(t *testing.T) {
	for _, interpolation := range Interpolations {
		t.Run(string(interpolation), func(t *testing.T) {
			r := NewContextRasterizer(interpolation, 0)
			s, err := r.NewSurface(40, 20)
			require.NoError(t, err)
			defer s.Release()

			blue := color.RGBA{B: 255, A: 255}
			require.NoError(t, s.DrawImage(solidImage(10, 5, blue), s.Bounds()))

			img, err := s.Capture()
			require.NoError(t, err)
			assert.Equal(t, 40, img.Bounds().Dx())
			assert.Equal(t, 20, img.Bounds().Dy())
			assertNear(t, blue, img.At(20, 10), 1)
		})
	}
}

func TestDrawImageSameSize(t *testing.T) {
	r := NewContextRasterizer(InterpolationNearest, 0)
	s, err := r.NewSurface(3, 3)
	require.NoError(t, err)
	defer s.Release()

	src := solidImage(3, 3, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	require.NoError(t, s.DrawImage(src, s.Bounds()))

	img, err := s.Capture()
	require.NoError(t, err)
	assertNear(t, color.RGBA{R: 255, A: 255}, img.At(1, 1), 1)
	assertNear(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, img.At(0, 0), 1)
}

func TestDrawMask(t *testing.T) {
	r := NewContextRasterizer(InterpolationNearest, 0)
	s, err := r.NewSurface(4, 4)
	require.NoError(t, err)
	defer s.Release()

	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	mask.SetAlpha(0, 0, color.Alpha{A: 255})

	red := color.RGBA{R: 255, A: 255}
	require.NoError(t, s.DrawMask(red, mask))

	img, err := s.Capture()
	require.NoError(t, err)
	assertNear(t, red, img.At(0, 0), 1)
	_, _, _, a := img.At(3, 3).RGBA()
	assert.Zero(t, a)
}

func TestReleasedSurface(t *testing.T) {
	r := NewContextRasterizer("", 0)
	s, err := r.NewSurface(2, 2)
	require.NoError(t, err)

	s.Release()
	s.Release()

	assert.ErrorIs(t, s.Fill(color.Black), ErrReleased)
	assert.ErrorIs(t, s.DrawImage(solidImage(1, 1, color.RGBA{}), image.Rect(0, 0, 1, 1)), ErrReleased)
	assert.ErrorIs(t, s.DrawMask(color.Black, image.NewAlpha(image.Rect(0, 0, 1, 1))), ErrReleased)
	_, err = s.Capture()
	assert.ErrorIs(t, err, ErrReleased)
	assert.True(t, s.Bounds().Empty())
}

func TestParseInterpolation(t *testing.T) {
	i, err := ParseInterpolation("catmull-rom")
	require.NoError(t, err)
	assert.Equal(t, InterpolationCatmullRom, i)

	_, err = ParseInterpolation("bicubic")
	assert.Error(t, err)
}
