package surface

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// Interpolation names the resampling algorithm used when an image is drawn
// stretched onto a surface.
type Interpolation string

const (
	// InterpolationNearest uses nearest-neighbor sampling (fastest, blocky).
	InterpolationNearest Interpolation = "nearest"
	// InterpolationApproxBiLinear mixes nearest-neighbor and bilinear sampling.
	InterpolationApproxBiLinear Interpolation = "approx-bilinear"
	// InterpolationBiLinear uses the tent kernel.
	InterpolationBiLinear Interpolation = "bilinear"
	// InterpolationCatmullRom uses the Catmull-Rom cubic kernel.
	InterpolationCatmullRom Interpolation = "catmull-rom"
	// InterpolationLanczos uses Lanczos3 resampling (slowest, sharpest).
	InterpolationLanczos Interpolation = "lanczos"
)

// Interpolations lists every supported interpolation.
var Interpolations = []Interpolation{
	InterpolationNearest,
	InterpolationApproxBiLinear,
	InterpolationBiLinear,
	InterpolationCatmullRom,
	InterpolationLanczos,
}

// ParseInterpolation converts a name into an Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	for _, i := range Interpolations {
		if string(i) == name {
			return i, nil
		}
	}
	return "", fmt.Errorf("surface: unknown interpolation %q", name)
}

var scalers = map[Interpolation]xdraw.Scaler{
	InterpolationNearest:        xdraw.NearestNeighbor,
	InterpolationApproxBiLinear: xdraw.ApproxBiLinear,
	InterpolationBiLinear:       xdraw.BiLinear,
	InterpolationCatmullRom:     xdraw.CatmullRom,
}

// scale draws src stretched over dr of dst.
//
// Lanczos goes through nfnt/resize, which produces a new image of the target
// size that is then composited; every other kernel scales directly into dst.
func (i Interpolation) scale(dst draw.Image, dr image.Rectangle, src image.Image) {
	if i == InterpolationLanczos {
		scaled := resize.Resize(uint(dr.Dx()), uint(dr.Dy()), src, resize.Lanczos3)
		draw.Draw(dst, dr, scaled, scaled.Bounds().Min, draw.Over)
		return
	}

	s, ok := scalers[i]
	if !ok {
		s = xdraw.BiLinear
	}
	s.Scale(dst, dr, src, src.Bounds(), xdraw.Over, nil)
}
