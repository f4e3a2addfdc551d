package renderer

import "errors"

var (
	ErrBackendUnavailable     = errors.New("renderer: backend not available")
	ErrInvalidFrameSize       = errors.New("renderer: invalid frame size")
	ErrFrameMismatch          = errors.New("renderer: frame dimensions do not match")
	ErrUnsupportedImageFormat = errors.New("renderer: unsupported image format")
)
