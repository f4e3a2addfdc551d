package renderer

import (
	"fmt"
	"strings"

	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

// The implementation used to render a frame.
type Backend uint8

const (
	// The single-threaded host implementation.
	Scalar Backend = iota
	// The opencl implementation.
	Accelerated
	//
	numBackends
)

// Implements Stringer.
func (b Backend) String() string {
	switch b {
	case Scalar:
		return "scalar"
	case Accelerated:
		return "opencl"
	}
	return fmt.Sprintf("backend(%d)", uint8(b))
}

// Parse a backend name. Both "scalar" and "soft" select the host backend
// while "opencl" and "cl" select the accelerated one.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "scalar", "soft":
		return Scalar, nil
	case "opencl", "cl":
		return Accelerated, nil
	}
	return 0, fmt.Errorf("renderer: unknown backend %q", name)
}

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Pad frame rows to a multiple of this many bytes.
	RowAlign int

	// The operation used when no explicit one is requested.
	Backend Backend
	Mode    tracer.Mode

	// Path or URL of the opencl program. If empty, the program bundled
	// with the opencl tracer is used.
	ProgramPath string

	// Device selection.
	DeviceType         device.DeviceType
	BlackListedDevices []string
}

func (opts Options) validate() error {
	if opts.FrameW <= 0 || opts.FrameH <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, opts.FrameW, opts.FrameH)
	}
	return nil
}
