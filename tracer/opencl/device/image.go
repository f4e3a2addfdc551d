package device

import "fmt"

// A 2D opencl image.
type Image struct {
	imgHandle MemHandle

	device *Device
	name   string

	width  int
	height int
	format ImageFormat
}

// Get image width.
func (img *Image) Width() int {
	return img.width
}

// Get image height.
func (img *Image) Height() int {
	return img.height
}

// Allocate the image. Any previous allocation is released first.
func (img *Image) Allocate(width, height int, format ImageFormat, flags MemFlag) error {
	img.Release()

	if img.device.ctx == nil {
		return &ResourceAllocationError{Device: img.device.Name, Resource: "image " + img.name, Err: ErrDeviceClosed}
	}

	handle, err := img.device.ctx.CreateImage2D(flags, format, width, height)
	if err != nil {
		return &ResourceAllocationError{
			Device:   img.device.Name,
			Resource: fmt.Sprintf("image %s of size %dx%d", img.name, width, height),
			Err:      err,
		}
	}

	img.imgHandle = handle
	img.width, img.height = width, height
	img.format = format
	return nil
}

// Copy the whole image into dst using the given row pitch in bytes. The call
// blocks until the transfer completes.
func (img *Image) ReadData(dst []byte, rowPitch int) error {
	if img.imgHandle == nil || img.device.cmdQueue == nil {
		return &DispatchError{Device: img.device.Name, Op: "read image " + img.name, Err: ErrNotAllocated}
	}

	if need := rowPitch*(img.height-1) + img.width*4; len(dst) < need {
		return &DispatchError{
			Device: img.device.Name,
			Op:     "read image " + img.name,
			Err:    fmt.Errorf("host buffer holds %d bytes; need %d", len(dst), need),
		}
	}

	if err := img.device.cmdQueue.ReadImage(img.imgHandle, img.width, img.height, rowPitch, dst); err != nil {
		return &DispatchError{Device: img.device.Name, Op: "read image " + img.name, Err: err}
	}

	return nil
}

// Release image.
func (img *Image) Release() {
	if img.imgHandle != nil {
		img.imgHandle.Release()
		img.imgHandle = nil
		img.width, img.height = 0, 0
	}
}
