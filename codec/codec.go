// Package codec wraps the lossy encoders and the decoders used to turn raster
// images into byte buffers and back.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	_ "image/png" // register PNG decoding
	"io"
	"math"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp" // register BMP decoding
)

// Format identifies an encoded image format.
type Format string

const (
	// FormatUnknown is reported for data no decoder recognises.
	FormatUnknown Format = ""
	// FormatJPEG is baseline JPEG.
	FormatJPEG Format = "jpeg"
	// FormatWebP is lossy WebP.
	FormatWebP Format = "webp"
	// FormatPNG is PNG. Decode only.
	FormatPNG Format = "png"
	// FormatGIF is GIF. Decode only.
	FormatGIF Format = "gif"
	// FormatBMP is BMP. Decode only.
	FormatBMP Format = "bmp"
)

var (
	// ErrUnsupportedFormat is returned for formats with no encoder or decoder.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	// ErrInvalidQuality is returned for a quality outside [0, 1].
	ErrInvalidQuality = errors.New("codec: quality must be within [0, 1]")
)

// Encoder compresses an image at a quality factor in [0, 1].
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality float64) error
	Format() Format
}

// NewEncoder returns the lossy encoder for format. An empty format selects JPEG.
func NewEncoder(format Format) (Encoder, error) {
	switch format {
	case FormatJPEG, FormatUnknown:
		return jpegEncoder{}, nil
	case FormatWebP:
		return webpEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: no encoder for %q", ErrUnsupportedFormat, format)
	}
}

func checkQuality(quality float64) error {
	if math.IsNaN(quality) || quality < 0 || quality > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidQuality, quality)
	}
	return nil
}

type jpegEncoder struct{}

func (jpegEncoder) Format() Format { return FormatJPEG }

// Encode maps quality onto the 1..100 JPEG scale.
func (jpegEncoder) Encode(w io.Writer, img image.Image, quality float64) error {
	if err := checkQuality(quality); err != nil {
		return err
	}
	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
}

type webpEncoder struct{}

func (webpEncoder) Format() Format { return FormatWebP }

func (webpEncoder) Encode(w io.Writer, img image.Image, quality float64) error {
	if err := checkQuality(quality); err != nil {
		return err
	}
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality * 100)})
}

// Decode decodes JPEG, PNG, GIF, WebP or BMP data.
//
// Arguments:
//   - data: The encoded image bytes.
//
// Returns:
//   - The decoded image.
//   - The detected format.
//   - ErrUnsupportedFormat if the data is not a recognised image, or the
//     decoder error.
func Decode(data []byte) (image.Image, Format, error) {
	format := Sniff(data)
	if format == FormatUnknown {
		return nil, FormatUnknown, ErrUnsupportedFormat
	}

	var (
		img image.Image
		err error
	)
	if format == FormatWebP {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, format, fmt.Errorf("codec: decode %s: %w", format, err)
	}
	return img, format, nil
}

// Sniff detects the image format from the leading magic bytes.
func Sniff(buf []byte) Format {
	switch {
	case isJPEG(buf):
		return FormatJPEG
	case isPNG(buf):
		return FormatPNG
	case isGIF(buf):
		return FormatGIF
	case isWebP(buf):
		return FormatWebP
	case isBMP(buf):
		return FormatBMP
	default:
		return FormatUnknown
	}
}

func isJPEG(buf []byte) bool {
	return len(buf) > 2 &&
		buf[0] == 0xFF &&
		buf[1] == 0xD8 &&
		buf[2] == 0xFF
}

func isPNG(buf []byte) bool {
	return len(buf) > 3 &&
		buf[0] == 0x89 && buf[1] == 0x50 &&
		buf[2] == 0x4E && buf[3] == 0x47
}

func isGIF(buf []byte) bool {
	return len(buf) > 2 &&
		buf[0] == 0x47 && buf[1] == 0x49 && buf[2] == 0x46
}

func isWebP(buf []byte) bool {
	return len(buf) > 11 &&
		buf[0] == 'R' && buf[1] == 'I' && buf[2] == 'F' && buf[3] == 'F' &&
		buf[8] == 0x57 && buf[9] == 0x45 &&
		buf[10] == 0x42 && buf[11] == 0x50
}

func isBMP(buf []byte) bool {
	return len(buf) > 1 && buf[0] == 'B' && buf[1] == 'M'
}
