package opencl

import "errors"

var (
	ErrSessionClosed     = errors.New("opencl session: session is not live")
	ErrFrameSizeMismatch = errors.New("opencl session: frame size does not match the output image")
	ErrInvalidImageSize  = errors.New("opencl session: invalid output image size")
)
