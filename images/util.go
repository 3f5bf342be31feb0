package images

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/draw"
)

// Checksum generates a deterministic checksum of a raster's pixels, useful to
// verify that an operation left its input untouched.
//
// Arguments:
// - r: The raster to compute checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string, or "empty" for an empty raster.
//
// Example:
//
// ```go
//
//	before := Checksum(photo)
//	_, _ = kit.Resize(photo, 64)
//	fmt.Println(before == Checksum(photo)) // true
//
// ```
func Checksum(r *Raster) string {
	if r.IsEmpty() {
		return "empty"
	}

	src := r.Pixels()
	rgba, ok := src.(*image.RGBA)
	if !ok {
		b := src.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}

	hash := md5.New()
	hash.Write(rgba.Pix)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
