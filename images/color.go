package images

import (
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Color is an RGBA color with straight (non-premultiplied) channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// NRGBA converts c to 8-bit straight alpha.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Hex returns the color part as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

// clamp restricts value to [min, max].
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// channelSums accumulates alpha-weighted channel totals for a block of rows.
type channelSums struct {
	r, g, b, a float64
}

// AverageColor returns the mean color of r.
//
// Colors are weighted by alpha, so transparent pixels do not pull the result
// toward black; the returned alpha is the plain mean alpha. The channels are
// combined in r's native color space if it has one, otherwise in the
// configured default. A fully transparent image averages to the zero Color.
//
// Arguments:
//   - r: The image to sample.
//
// Returns:
//   - The average color with channels in [0, 1].
//   - ErrInvalidParameter if r is empty.
func (t *Toolkit) AverageColor(r *Raster) (Color, error) {
	done := t.profiler.StartOperation("average")
	c, err := t.averageColor(r)
	done(err)
	return c, err
}

func (t *Toolkit) averageColor(r *Raster) (Color, error) {
	if r.IsEmpty() {
		return Color{}, errors.Wrap(ErrInvalidParameter, "average color: image is empty")
	}

	space := r.ColorSpace()
	if space == ColorSpaceUnspecified {
		space = t.config.ColorSpace
	}
	linear := space == ColorSpaceLinear

	img := r.Pixels()
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var (
		mu    sync.Mutex
		total channelSums
	)
	Parallel(height, func(start, end int) {
		var part channelSums
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				pr, pg, pb, pa := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				if pa == 0 {
					continue
				}
				a := float64(pa) / 0xffff
				// Un-premultiply to get the stored color.
				cr := float64(pr) / float64(pa)
				cg := float64(pg) / float64(pa)
				cb := float64(pb) / float64(pa)
				if linear {
					cr, cg, cb = colorful.Color{R: cr, G: cg, B: cb}.LinearRgb()
				}
				part.r += cr * a
				part.g += cg * a
				part.b += cb * a
				part.a += a
			}
		}
		mu.Lock()
		total.r += part.r
		total.g += part.g
		total.b += part.b
		total.a += part.a
		mu.Unlock()
	})

	if total.a == 0 {
		return Color{}, nil
	}

	avg := colorful.Color{
		R: total.r / total.a,
		G: total.g / total.a,
		B: total.b / total.a,
	}
	if linear {
		avg = colorful.LinearRgb(avg.R, avg.G, avg.B)
	}
	avg = avg.Clamped()

	out := Color{R: avg.R, G: avg.G, B: avg.B, A: total.a / float64(width*height)}
	t.logger.Debug("average color",
		zap.String("colorSpace", string(space)),
		zap.String("hex", out.Hex()),
		zap.Float64("alpha", out.A),
	)
	return out, nil
}

// Parallel splits dataSize rows into one partition per CPU and runs fn on
// each concurrently, returning when all partitions are done.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// For small data sizes, parallel processing overhead isn't worth it.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
