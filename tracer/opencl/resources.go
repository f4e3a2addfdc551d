package opencl

import (
	"fmt"
	"time"

	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

const (
	// Local work group size used for both dimensions.
	localWorkSize = 16
)

// A container that stores handles to open CL kernels and the output image.
type deviceResources struct {
	device *device.Device

	// The set of kernels indexed by kernelType. A nil entry means that the
	// program does not define that kernel; the matching error is kept in
	// kernelErrs.
	kernels    []*device.Kernel
	kernelErrs []error

	// The output image that receives rendered frames.
	image *device.Image
}

// Using the supplied device as a target, load all defined kernels. Missing
// kernels are not treated as an error.
func newDeviceResources(dev *device.Device) *deviceResources {
	dr := &deviceResources{
		device:     dev,
		kernels:    make([]*device.Kernel, numKernels),
		kernelErrs: make([]error, numKernels),
	}

	var kType kernelType
	for kType = 0; kType < numKernels; kType++ {
		dr.kernels[kType], dr.kernelErrs[kType] = dev.Kernel(kType.String())
	}

	return dr
}

// Count the resolved kernels.
func (dr *deviceResources) numKernels() int {
	count := 0
	for _, kernel := range dr.kernels {
		if kernel != nil {
			count++
		}
	}
	return count
}

// Allocate the output image, replacing any existing one only if the new
// allocation succeeds.
func (dr *deviceResources) allocateImage(frameW, frameH int) error {
	if frameW <= 0 || frameH <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, frameW, frameH)
	}

	img := dr.device.Image("output")
	if err := img.Allocate(frameW, frameH, device.RGBA8, device.MemWriteOnly); err != nil {
		return err
	}

	if dr.image != nil {
		dr.image.Release()
	}
	dr.image = img
	return nil
}

// Release the output image and then the kernels in reverse load order.
func (dr *deviceResources) Close() {
	if dr.image != nil {
		dr.image.Release()
		dr.image = nil
	}

	if dr.kernels != nil {
		for kType := len(dr.kernels) - 1; kType >= 0; kType-- {
			if dr.kernels[kType] != nil {
				dr.kernels[kType].Release()
			}
		}
		dr.kernels = nil
	}
}

// Get the kernel for the given type or the error recorded when it failed to load.
func (dr *deviceResources) kernel(kType kernelType) (*device.Kernel, error) {
	if dr.kernels[kType] == nil {
		return nil, dr.kernelErrs[kType]
	}
	return dr.kernels[kType], nil
}

// Check that the frame matches the output image.
func (dr *deviceResources) checkFrame(frame *tracer.Frame) error {
	if err := frame.Validate(); err != nil {
		return err
	}
	if dr.image == nil || frame.Width != dr.image.Width() || frame.Height != dr.image.Height() {
		var imgW, imgH int
		if dr.image != nil {
			imgW, imgH = dr.image.Width(), dr.image.Height()
		}
		return fmt.Errorf("%w: frame is %dx%d; image is %dx%d", ErrFrameSizeMismatch, frame.Width, frame.Height, imgW, imgH)
	}
	return nil
}

// Render the gradient into the output image and copy it to the frame.
func (dr *deviceResources) RenderGradient(frame *tracer.Frame) (time.Duration, error) {
	kernel, err := dr.kernel(renderGradient)
	if err != nil {
		return 0, err
	}
	if err = dr.checkFrame(frame); err != nil {
		return 0, err
	}

	err = kernel.SetArgs(
		dr.image,
	)
	if err != nil {
		return 0, err
	}

	return dr.execAndRead(kernel, frame)
}

// Upload the camera and sphere, render the depth image and copy it to the
// frame. The scene buffers only live for the duration of the call.
func (dr *deviceResources) RenderProjectDepth(frame *tracer.Frame, sc *scene.Scene) (time.Duration, error) {
	kernel, err := dr.kernel(renderProjectDepth)
	if err != nil {
		return 0, err
	}
	if err = dr.checkFrame(frame); err != nil {
		return 0, err
	}

	cameraData := []scene.CameraData{sc.CameraData()}
	cameraBuf := dr.device.Buffer("camera")
	defer cameraBuf.Release()
	if err = cameraBuf.AllocateToFitData(cameraData, device.MemReadOnly); err != nil {
		return 0, err
	}
	if err = cameraBuf.WriteData(cameraData, 0); err != nil {
		return 0, err
	}

	sphereData := []scene.SphereData{sc.SphereData()}
	sphereBuf := dr.device.Buffer("sphere")
	defer sphereBuf.Release()
	if err = sphereBuf.AllocateToFitData(sphereData, device.MemReadOnly); err != nil {
		return 0, err
	}
	if err = sphereBuf.WriteData(sphereData, 0); err != nil {
		return 0, err
	}

	err = kernel.SetArgs(
		cameraBuf,
		sphereBuf,
		dr.image,
	)
	if err != nil {
		return 0, err
	}

	return dr.execAndRead(kernel, frame)
}

// Run a kernel over the whole image and read the result back into the
// frame.
func (dr *deviceResources) execAndRead(kernel *device.Kernel, frame *tracer.Frame) (time.Duration, error) {
	tick := time.Now()

	_, err := kernel.Exec2D(frame.Width, frame.Height, localWorkSize, localWorkSize)
	if err != nil {
		return 0, err
	}

	err = dr.image.ReadData(frame.Pixels, frame.Pitch)
	if err != nil {
		return 0, err
	}

	return time.Since(tick), nil
}
