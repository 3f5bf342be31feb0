package images

import "errors"

var (
	// ErrInvalidParameter is returned for a non-positive target width, a
	// quality outside [0, 1], or an empty source image.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrRenderingFailed is returned when a drawing surface cannot be
	// allocated, drawn into or captured.
	ErrRenderingFailed = errors.New("rendering failed")
	// ErrEncodingFailed is returned when the lossy encoder produces no output
	// or its output cannot be decoded back.
	ErrEncodingFailed = errors.New("encoding failed")
	// ErrSymbolNotFound is returned when a catalog has no symbol of that name.
	ErrSymbolNotFound = errors.New("symbol not found")
)
