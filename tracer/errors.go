package tracer

import "errors"

var (
	ErrInvalidFrame    = errors.New("tracer: invalid frame")
	ErrUnsupportedMode = errors.New("tracer: unsupported render mode")
)
