package device

import "fmt"

// The interfaces in this file abstract the opencl runtime so that device
// discovery and resource management can run against real hardware (see
// package driver) or an in-memory implementation (see package devicetest).

// Access point to the installed opencl platforms.
type Driver interface {
	Platforms() ([]Platform, error)
}

type Platform interface {
	Name() string

	// List the platform devices matching the type mask.
	Devices(typeMask DeviceType) ([]DeviceHandle, error)
}

type DeviceHandle interface {
	Name() string
	Vendor() string
	Version() string
	Type() DeviceType

	// Create a single-device context.
	CreateContext() (ContextHandle, error)
}

type ContextHandle interface {
	SupportedImageFormats(flags MemFlag) ([]ImageFormat, error)
	CreateCommandQueue() (QueueHandle, error)
	CreateProgram(source string) (ProgramHandle, error)
	CreateBuffer(flags MemFlag, size int) (MemHandle, error)
	CreateImage2D(flags MemFlag, format ImageFormat, width, height int) (MemHandle, error)
	Release()
}

// All queue operations block until they complete.
type QueueHandle interface {
	WriteBuffer(buf MemHandle, offset int, data []byte) error
	ReadImage(img MemHandle, width, height, rowPitch int, dst []byte) error
	EnqueueKernel(k KernelHandle, globalWorkSize, localWorkSize []int) error
	Finish() error
	Release()
}

type ProgramHandle interface {
	// Build the program for the context device. The returned log is
	// populated even if the build fails.
	Build(options string) (string, error)
	CreateKernel(name string) (KernelHandle, error)
	Release()
}

type KernelHandle interface {
	// Bind an argument. Supported values are MemHandle, int32, uint32
	// and float32.
	SetArg(index int, value interface{}) error
	Release()
}

type MemHandle interface {
	Release()
}

type MemFlag uint8

const (
	MemReadWrite MemFlag = 1 << iota
	MemWriteOnly
	MemReadOnly
)

type ChannelOrder uint32

// Channel order values as defined by the opencl headers.
const (
	ChannelOrderR    ChannelOrder = 0x10B0
	ChannelOrderRGBA ChannelOrder = 0x10B5
	ChannelOrderBGRA ChannelOrder = 0x10B6
)

type ChannelType uint32

// Channel data type values as defined by the opencl headers.
const (
	ChannelTypeUnormInt8    ChannelType = 0x10D2
	ChannelTypeUnsignedInt8 ChannelType = 0x10DA
	ChannelTypeFloat        ChannelType = 0x10DE
)

type ImageFormat struct {
	Order ChannelOrder
	Type  ChannelType
}

// The 8-bit per channel RGBA format required by the render kernels.
var RGBA8 = ImageFormat{ChannelOrderRGBA, ChannelTypeUnsignedInt8}

// Implements Stringer.
func (f ImageFormat) String() string {
	return fmt.Sprintf("order 0x%X, type 0x%X", uint32(f.Order), uint32(f.Type))
}

type DeviceType uint8

// Supported device types.
const (
	CpuDevice DeviceType = 1 << iota
	GpuDevice
	OtherDevice
	AllDevices DeviceType = 0xFF
)

func (dt DeviceType) String() string {
	switch dt {
	case CpuDevice:
		return "CPU"
	case GpuDevice:
		return "GPU"
	case OtherDevice:
		return "Other"
	case AllDevices:
		return "All"
	}
	return fmt.Sprintf("DeviceType(0x%X)", uint8(dt))
}

// Parse a device type name as accepted by the --device-type flag.
func ParseDeviceType(name string) (DeviceType, error) {
	switch name {
	case "cpu", "CPU":
		return CpuDevice, nil
	case "gpu", "GPU":
		return GpuDevice, nil
	case "all", "ALL":
		return AllDevices, nil
	}
	return 0, fmt.Errorf("opencl: unknown device type %q", name)
}
