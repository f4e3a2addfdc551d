package device

import (
	"fmt"
	"strings"

	"github.com/lanyuliuyun/ray-trace/log"
)

var logger = log.New("opencl device")

// Device discovery parameters.
type Query struct {
	// Device types to consider.
	Type DeviceType

	// Devices whose names contain any of these strings are skipped.
	BlackList []string

	// The 2D image format the device must support.
	Format ImageFormat
}

// The query used when nothing else is requested: a GPU device supporting
// 8-bit RGBA images.
func DefaultQuery() Query {
	return Query{
		Type:   GpuDevice,
		Format: RGBA8,
	}
}

// Wrapper around an opencl device and the handles allocated for it.
type Device struct {
	Name    string
	Vendor  string
	Version string
	Type    DeviceType

	handle DeviceHandle

	// Opencl handles; the context is created by discovery, the queue by
	// Init and the program by BuildProgram.
	ctx      ContextHandle
	cmdQueue QueueHandle
	program  ProgramHandle
}

// Implements Stringer.
func (d *Device) String() string {
	return fmt.Sprintf("Name: %s\nType: %s\nVendor: %s\nVersion: %s", d.Name, d.Type, d.Vendor, d.Version)
}

// Scan all platforms and return the first device matching the query. The
// returned device owns an opencl context; contexts created for rejected
// devices are released before moving on.
func SelectDevice(drv Driver, q Query) (*Device, error) {
	platforms, err := drv.Platforms()
	if err != nil {
		return nil, &NoSuitableDeviceError{Query: q, Err: err}
	}

	for _, p := range platforms {
		handles, err := p.Devices(q.Type)
		if err != nil {
			logger.Infof("skipping platform %q: %v", p.Name(), err)
			continue
		}

		for _, h := range handles {
			if isBlackListed(h.Name(), q.BlackList) {
				logger.Infof("skipping blacklisted device %q", h.Name())
				continue
			}

			ctx, err := h.CreateContext()
			if err != nil {
				logger.Infof("skipping device %q: could not create context: %v", h.Name(), err)
				continue
			}

			formats, err := ctx.SupportedImageFormats(MemReadWrite)
			if err != nil || !containsFormat(formats, q.Format) {
				logger.Infof("skipping device %q: image format (%s) not supported", h.Name(), q.Format)
				ctx.Release()
				continue
			}

			dev := &Device{
				Name:    h.Name(),
				Vendor:  h.Vendor(),
				Version: h.Version(),
				Type:    h.Type(),
				handle:  h,
				ctx:     ctx,
			}
			logger.Noticef("selected device, name: %s, vendor: %s, version: %s", dev.Name, dev.Vendor, dev.Version)
			return dev, nil
		}
	}

	return nil, &NoSuitableDeviceError{Query: q}
}

// Create the device command queue.
func (d *Device) Init() error {
	if d.ctx == nil {
		return &ResourceAllocationError{Device: d.Name, Resource: "command queue", Err: ErrDeviceClosed}
	}

	// Already initialized
	if d.cmdQueue != nil {
		return nil
	}

	var err error
	d.cmdQueue, err = d.ctx.CreateCommandQueue()
	if err != nil {
		d.cmdQueue = nil
		return &ResourceAllocationError{Device: d.Name, Resource: "command queue", Err: err}
	}

	return nil
}

// Compile a program from source. Any previously built program is released.
func (d *Device) BuildProgram(source, options string) error {
	if d.ctx == nil {
		return &ResourceAllocationError{Device: d.Name, Resource: "program", Err: ErrDeviceClosed}
	}

	d.releaseProgram()

	program, err := d.ctx.CreateProgram(source)
	if err != nil {
		return &ResourceAllocationError{Device: d.Name, Resource: "program", Err: err}
	}

	buildLog, err := program.Build(options)
	if err != nil {
		program.Release()
		if len(buildLog) > MaxBuildLogSize {
			buildLog = buildLog[:MaxBuildLogSize]
		}
		return &ProgramBuildError{Device: d.Name, Log: buildLog, Err: err}
	}

	d.program = program
	return nil
}

// Load kernel by name.
func (d *Device) Kernel(name string) (*Kernel, error) {
	if d.program == nil {
		return nil, &KernelMissingError{Device: d.Name, Kernel: name, Err: ErrNoProgram}
	}

	kernelHandle, err := d.program.CreateKernel(name)
	if err != nil {
		return nil, &KernelMissingError{Device: d.Name, Kernel: name, Err: err}
	}

	return &Kernel{
		device:       d,
		kernelHandle: kernelHandle,
		name:         name,
	}, nil
}

// Create an empty buffer.
func (d *Device) Buffer(name string) *Buffer {
	return &Buffer{
		device: d,
		name:   name,
	}
}

// Create an empty image.
func (d *Device) Image(name string) *Image {
	return &Image{
		device: d,
		name:   name,
	}
}

// Release the program, command queue and context. Handles that were never
// acquired are skipped so Close may be called at any point and more than
// once.
func (d *Device) Close() {
	d.releaseProgram()

	if d.cmdQueue != nil {
		d.cmdQueue.Release()
		d.cmdQueue = nil
	}

	if d.ctx != nil {
		d.ctx.Release()
		d.ctx = nil
	}
}

func (d *Device) releaseProgram() {
	if d.program != nil {
		d.program.Release()
		d.program = nil
	}
}

func isBlackListed(name string, blackList []string) bool {
	for _, text := range blackList {
		if text != "" && strings.Contains(name, text) {
			return true
		}
	}
	return false
}

func containsFormat(formats []ImageFormat, format ImageFormat) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
