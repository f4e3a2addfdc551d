package device

import (
	"fmt"
	"reflect"
	"time"
)

// A wrapper around opencl kernel handles.
type Kernel struct {
	device       *Device
	kernelHandle KernelHandle
	name         string

	// Work sizes used by the last Exec2D call.
	globalWorkSizes [2]int
	localWorkSizes  [2]int
}

// Get the kernel entry point name.
func (k *Kernel) Name() string {
	return k.name
}

// Free any allocated resources used by this kernel.
func (k *Kernel) Release() {
	if k.kernelHandle != nil {
		k.kernelHandle.Release()
		k.kernelHandle = nil
	}
}

// Bind arguments to the kernel in positional order.
func (k *Kernel) SetArgs(args ...interface{}) error {
	if k.kernelHandle == nil {
		return &DispatchError{Device: k.device.Name, Op: "set args for kernel " + k.name, Err: ErrNotAllocated}
	}

	for argIndex, arg := range args {
		var value interface{}
		switch t := arg.(type) {
		case *Buffer:
			if t.bufHandle == nil {
				return k.argError(argIndex, fmt.Errorf("buffer %s: %w", t.name, ErrNotAllocated))
			}
			value = t.bufHandle
		case *Image:
			if t.imgHandle == nil {
				return k.argError(argIndex, fmt.Errorf("image %s: %w", t.name, ErrNotAllocated))
			}
			value = t.imgHandle
		case int32, uint32, float32:
			value = t
		default:
			return k.argError(argIndex, fmt.Errorf("unsupported arg type: %s", reflect.TypeOf(arg)))
		}

		if err := k.kernelHandle.SetArg(argIndex, value); err != nil {
			return k.argError(argIndex, err)
		}
	}

	return nil
}

// Execute a 2D kernel. Each global work size is rounded up to a multiple of
// the matching local work size; kernels must ignore work items that fall
// outside their output. If both local sizes are 0 the opencl implementation
// picks the local work size.
func (k *Kernel) Exec2D(globalWorkSizeX, globalWorkSizeY, localWorkSizeX, localWorkSizeY int) (time.Duration, error) {
	if k.kernelHandle == nil || k.device.cmdQueue == nil {
		return 0, &DispatchError{Device: k.device.Name, Op: "execute kernel " + k.name, Err: ErrNotAllocated}
	}

	var local []int
	if localWorkSizeX > 0 && localWorkSizeY > 0 {
		k.localWorkSizes = [2]int{localWorkSizeX, localWorkSizeY}
		local = k.localWorkSizes[:]
		globalWorkSizeX = roundUp(globalWorkSizeX, localWorkSizeX)
		globalWorkSizeY = roundUp(globalWorkSizeY, localWorkSizeY)
	}
	k.globalWorkSizes = [2]int{globalWorkSizeX, globalWorkSizeY}

	// Run kernel
	tick := time.Now()
	err := k.device.cmdQueue.EnqueueKernel(k.kernelHandle, k.globalWorkSizes[:], local)
	if err != nil {
		return 0, &DispatchError{Device: k.device.Name, Op: "execute kernel " + k.name, Err: err}
	}

	// Wait for the kernel to complete
	err = k.device.cmdQueue.Finish()
	if err != nil {
		return 0, &DispatchError{Device: k.device.Name, Op: "wait for kernel " + k.name, Err: err}
	}

	return time.Since(tick), nil
}

// Get the padded global work size used by the last Exec2D call.
func (k *Kernel) GlobalWorkSize() (int, int) {
	return k.globalWorkSizes[0], k.globalWorkSizes[1]
}

func (k *Kernel) argError(argIndex int, err error) error {
	return &DispatchError{
		Device: k.device.Name,
		Op:     fmt.Sprintf("set arg %d for kernel %s", argIndex, k.name),
		Err:    err,
	}
}

func roundUp(v, multiple int) int {
	if rem := v % multiple; rem != 0 {
		return v + multiple - rem
	}
	return v
}
