package device

import (
	"errors"
	"fmt"
)

// Upper bound for the build log attached to a ProgramBuildError.
const MaxBuildLogSize = 4096

// Returned by device discovery when no device exposes the requested image
// format. The scalar tracer remains usable.
type NoSuitableDeviceError struct {
	Query Query

	// Set if platform enumeration itself failed.
	Err error
}

func (e *NoSuitableDeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("opencl: no suitable %s device supporting image format (%s): %v", e.Query.Type, e.Query.Format, e.Err)
	}
	return fmt.Sprintf("opencl: no suitable %s device supporting image format (%s)", e.Query.Type, e.Query.Format)
}

func (e *NoSuitableDeviceError) Unwrap() error {
	return e.Err
}

// Returned when the program source fails to compile. Log holds the
// compiler diagnostics, truncated to MaxBuildLogSize bytes.
type ProgramBuildError struct {
	Device string
	Log    string
	Err    error
}

func (e *ProgramBuildError) Error() string {
	return fmt.Sprintf("opencl device (%s): could not build program: %v\n%s", e.Device, e.Err, e.Log)
}

func (e *ProgramBuildError) Unwrap() error {
	return e.Err
}

// Returned when a named kernel entry point is not defined by the program.
type KernelMissingError struct {
	Device string
	Kernel string
	Err    error
}

func (e *KernelMissingError) Error() string {
	return fmt.Sprintf("opencl device (%s): could not load kernel %s: %v", e.Device, e.Kernel, e.Err)
}

func (e *KernelMissingError) Unwrap() error {
	return e.Err
}

// Returned when a device resource cannot be created.
type ResourceAllocationError struct {
	Device   string
	Resource string
	Err      error
}

func (e *ResourceAllocationError) Error() string {
	return fmt.Sprintf("opencl device (%s): could not allocate %s: %v", e.Device, e.Resource, e.Err)
}

func (e *ResourceAllocationError) Unwrap() error {
	return e.Err
}

// Returned by failed argument binding, kernel execution or data transfers.
type DispatchError struct {
	Device string
	Op     string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("opencl device (%s): %s failed: %v", e.Device, e.Op, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

var (
	ErrDeviceClosed = errors.New("device context has been released")
	ErrNoProgram    = errors.New("no program has been built")
	ErrNotAllocated = errors.New("resource has not been allocated")
)
