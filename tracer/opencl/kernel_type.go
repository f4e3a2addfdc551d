package opencl

import (
	"fmt"

	"github.com/lanyuliuyun/ray-trace/tracer"
)

type kernelType uint8

// The list of kernels that implement the tracer.
const (
	renderGradient kernelType = iota
	renderProjectDepth
	//
	numKernels
)

// Implements Stringer; map kernel type to the kernel name as defined in the CL source files.
func (kt kernelType) String() string {
	switch kt {
	case renderGradient:
		return "render_gradient"
	case renderProjectDepth:
		return "render_project_depth"
	default:
		panic(fmt.Sprintf("Unsupported kernel type: %d", kt))
	}
}

// Get the kernel implementing a render mode.
func kernelForMode(mode tracer.Mode) (kernelType, error) {
	switch mode {
	case tracer.Gradient:
		return renderGradient, nil
	case tracer.ProjectDepth:
		return renderProjectDepth, nil
	}
	return numKernels, fmt.Errorf("opencl: %w: %s", tracer.ErrUnsupportedMode, mode)
}
