package images

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagekit/codec"
)

// Compress encodes r with the toolkit's lossy encoder at quality in [0, 1].
//
// Arguments:
//   - r: The image to encode.
//   - quality: 0 is smallest, 1 is best.
//
// Returns:
//   - The encoded bytes.
//   - ErrInvalidParameter if quality is outside [0, 1].
//   - ErrEncodingFailed if r is empty or the encoder produced nothing.
func (t *Toolkit) Compress(r *Raster, quality float64) ([]byte, error) {
	done := t.profiler.StartOperation("compress")
	data, err := t.compress(r, quality)
	done(err)
	if err != nil {
		return nil, err
	}
	t.profiler.RecordMetric("compress.bytes", float64(len(data)))
	return data, nil
}

// CompressDefault is Compress at the configured default quality.
func (t *Toolkit) CompressDefault(r *Raster) ([]byte, error) {
	return t.Compress(r, t.config.Quality)
}

func (t *Toolkit) compress(r *Raster, quality float64) ([]byte, error) {
	if math.IsNaN(quality) || quality < 0 || quality > 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "compress: quality %v outside [0, 1]", quality)
	}
	if r.IsEmpty() {
		return nil, errors.Wrap(ErrEncodingFailed, "compress: image is empty")
	}

	var buf bytes.Buffer
	if err := t.encoder.Encode(&buf, r.Pixels(), quality); err != nil {
		return nil, errors.Wrapf(ErrEncodingFailed, "compress: %s: %v", t.encoder.Format(), err)
	}
	if buf.Len() == 0 {
		return nil, errors.Wrapf(ErrEncodingFailed, "compress: %s produced no output", t.encoder.Format())
	}

	t.logger.Debug("compress",
		zap.String("format", string(t.encoder.Format())),
		zap.Float64("quality", quality),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// CompressedCopy compresses r and decodes the result back into a raster, so
// the copy carries the encoder's artifacts. The copy keeps r's scale,
// rendering mode and color space.
//
// Returns:
//   - The decoded copy.
//   - Any Compress error, or ErrEncodingFailed if decoding fails.
func (t *Toolkit) CompressedCopy(r *Raster, quality float64) (*Raster, error) {
	data, err := t.Compress(r, quality)
	if err != nil {
		return nil, err
	}

	img, _, err := codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingFailed, "decode compressed copy: %v", err)
	}
	return r.derive(img), nil
}

// ByteSize returns the length of r compressed at full quality, or 0 if it
// cannot be compressed.
func (t *Toolkit) ByteSize(r *Raster) int {
	data, err := t.Compress(r, 1.0)
	if err != nil {
		t.logger.Debug("byte size: treating as zero", zap.Error(err))
		return 0
	}
	return len(data)
}

// KilobyteSize returns ByteSize / 1024, rounded down.
func (t *Toolkit) KilobyteSize(r *Raster) int {
	return t.ByteSize(r) / 1024
}
