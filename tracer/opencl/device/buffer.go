package device

import (
	"fmt"
	"reflect"
	"unsafe"
)

type Buffer struct {
	// Handle to opencl buffer.
	bufHandle MemHandle

	// Associated Device.
	device *Device

	// A name for identifying the buffer.
	name string

	// Allocated size.
	size int
}

// Get buffer size.
func (b *Buffer) Size() int {
	return b.size
}

// Allocate a buffer with the given size and flags.
func (b *Buffer) Allocate(size int, flags MemFlag) error {
	// If the buffer is already allocated release it
	b.Release()

	if b.device.ctx == nil {
		return &ResourceAllocationError{Device: b.device.Name, Resource: "buffer " + b.name, Err: ErrDeviceClosed}
	}

	handle, err := b.device.ctx.CreateBuffer(flags, size)
	if err != nil {
		return &ResourceAllocationError{
			Device:   b.device.Name,
			Resource: fmt.Sprintf("buffer %s of size %d", b.name, size),
			Err:      err,
		}
	}

	b.bufHandle = handle
	b.size = size
	return nil
}

// Allocate a buffer with enough capacity to fit the given data.
func (b *Buffer) AllocateToFitData(data interface{}, flags MemFlag) error {
	_, dataLen := getSliceData(data)
	return b.Allocate(dataLen, flags)
}

// Write data to the device buffer. The behavior of this method is undefined
// if a non-slice argument is passed or the argument does not use contiguous
// memory. A byte offset may also be specified to adjust the actual data copied.
func (b *Buffer) WriteData(data interface{}, offset int) error {
	if b.bufHandle == nil || b.device.cmdQueue == nil {
		return &DispatchError{Device: b.device.Name, Op: "write buffer " + b.name, Err: ErrNotAllocated}
	}

	dataPtr, dataLen := getSliceData(data)
	if offset+dataLen > b.size {
		return &DispatchError{
			Device: b.device.Name,
			Op:     "write buffer " + b.name,
			Err:    fmt.Errorf("insufficient buffer space (%d) for copying data of length %d at offset %d", b.size, dataLen, offset),
		}
	}

	err := b.device.cmdQueue.WriteBuffer(b.bufHandle, offset, unsafe.Slice((*byte)(dataPtr), dataLen))
	if err != nil {
		return &DispatchError{Device: b.device.Name, Op: "write buffer " + b.name, Err: err}
	}

	return nil
}

// Release buffer.
func (b *Buffer) Release() {
	if b.bufHandle != nil {
		b.bufHandle.Release()
		b.bufHandle = nil
		b.size = 0
	}
}

// Given an interface{} containing a slice return a pointer to its data and its length.
func getSliceData(data interface{}) (unsafe.Pointer, int) {
	reflVal := reflect.ValueOf(data)

	if reflVal.Kind() != reflect.Slice {
		panic("getSliceData: this function only supports slices")
	}

	sliceElemCount := reflVal.Len()
	if sliceElemCount == 0 {
		panic("getSliceData: supplied slice object is empty")
	}

	return unsafe.Pointer(reflVal.Index(0).Addr().Pointer()),
		sliceElemCount * int(reflect.TypeOf(data).Elem().Size())
}
