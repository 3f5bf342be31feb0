package images

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewFilled(t *testing.T) {
	kit := Default()

	tests := []struct {
		name  string
		color color.Color
		size  Size
	}{
		{"opaque red square", color.RGBA{R: 255, A: 255}, Size{Width: 16, Height: 16}},
		{"wide gray", color.Gray{Y: 128}, Size{Width: 120, Height: 3}},
		{"tall translucent", color.NRGBA{R: 10, G: 200, B: 90, A: 128}, Size{Width: 1, Height: 50}},
		{"transparent", color.Transparent, Size{Width: 7, Height: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := kit.NewFilled(FillSpec{Color: tt.color, Size: tt.size})
			require.False(t, r.IsEmpty())
			assert.Equal(t, tt.size, r.Size())

			p := r.PixelSize()
			for _, pt := range []image.Point{{0, 0}, {p.X - 1, p.Y - 1}, {p.X / 2, p.Y / 2}} {
				assertColorNear(t, tt.color, r.Pixels().At(pt.X, pt.Y), "pixel %v", pt)
			}
		})
	}
}

func TestNewFilledUsesConfiguredScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = 2
	kit, err := New(cfg)
	require.NoError(t, err)

	r := kit.NewFilled(FillSpec{Color: color.Black, Size: Size{Width: 10, Height: 5}})
	assert.Equal(t, image.Pt(20, 10), r.PixelSize())
	assert.Equal(t, Size{Width: 10, Height: 5}, r.Size())
	assert.Equal(t, 2.0, r.Scale())
}

func TestNewFilledNilColorIsTransparent(t *testing.T) {
	r := Default().NewFilled(FillSpec{Size: Size{Width: 2, Height: 2}})
	require.False(t, r.IsEmpty())
	_, _, _, a := r.Pixels().At(1, 1).RGBA()
	assert.Zero(t, a)
}

func TestNewFilledInvalidSizeReturnsPlaceholder(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	kit := Default(WithLogger(zap.New(core)))

	for _, size := range []Size{
		{Width: 0, Height: 10},
		{Width: 10, Height: -1},
		{Width: math.NaN(), Height: 1},
		{Width: 0.2, Height: 0.2},
	} {
		r := kit.NewFilled(FillSpec{Color: color.White, Size: size})
		assert.True(t, r.IsEmpty(), "size %v", size)
	}
	assert.Equal(t, 4, logs.Len())
}

func TestNewFilledRenderFailureReturnsPlaceholder(t *testing.T) {
	t.Run("allocation fails", func(t *testing.T) {
		rasterizer := new(mockRasterizer)
		rasterizer.On("NewSurface", 4, 4).Return(nil, errors.New("out of memory"))

		r := Default(WithRasterizer(rasterizer)).NewFilled(FillSpec{Color: color.White, Size: Size{Width: 4, Height: 4}})
		assert.True(t, r.IsEmpty())
		rasterizer.AssertExpectations(t)
	})

	t.Run("capture fails and surface is released", func(t *testing.T) {
		s := new(mockSurface)
		s.On("Fill", mock.Anything).Return(nil)
		s.On("Capture").Return(nil, errors.New("device lost"))
		s.On("Release").Return().Once()

		rasterizer := new(mockRasterizer)
		rasterizer.On("NewSurface", 4, 4).Return(s, nil)

		r := Default(WithRasterizer(rasterizer)).NewFilled(FillSpec{Color: color.White, Size: Size{Width: 4, Height: 4}})
		assert.True(t, r.IsEmpty())
		s.AssertExpectations(t)
	})

	t.Run("fill fails and surface is released", func(t *testing.T) {
		s := new(mockSurface)
		s.On("Fill", mock.Anything).Return(errors.New("bad color"))
		s.On("Release").Return().Once()

		rasterizer := new(mockRasterizer)
		rasterizer.On("NewSurface", 4, 4).Return(s, nil)

		r := Default(WithRasterizer(rasterizer)).NewFilled(FillSpec{Color: color.White, Size: Size{Width: 4, Height: 4}})
		assert.True(t, r.IsEmpty())
		s.AssertExpectations(t)
		s.AssertNotCalled(t, "Capture")
	})
}

func TestNewFilledHugeSizeReturnsPlaceholder(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	kit := Default(WithLogger(zap.New(core)))

	for _, size := range []Size{
		{Width: 1 << 32, Height: 1 << 32},
		{Width: 1e300, Height: 2},
		{Width: 2, Height: 1 << 40},
	} {
		var r *Raster
		require.NotPanics(t, func() { r = kit.NewFilled(FillSpec{Color: color.White, Size: size}) }, "size %v", size)
		assert.True(t, r.IsEmpty(), "size %v", size)
	}
	assert.Equal(t, 3, logs.Len())
}
