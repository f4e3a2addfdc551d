// Package info queries the opencl runtime for an inventory of platforms and
// devices.
package info

import (
	"bytes"
	"fmt"
	"regexp"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

const (
	platformBufferSize = 100
	deviceBufferSize   = 100
	dataBufferSize     = 1024
)

var (
	indentRegex = regexp.MustCompile("(?m)^")
)

// Information about an opencl device.
type DeviceInfo struct {
	Name    string
	Vendor  string
	Version string
	Type    device.DeviceType

	ComputeUnits uint32

	// Max clock frequency in MHz.
	ClockSpeed uint32

	// Speed estimate in GFlops.
	Speed uint32
}

// Implements Stringer.
func (d DeviceInfo) String() string {
	return fmt.Sprintf(
		"Name: %s\nType: %s\nVendor: %s\nVersion: %s\nSpecs: %d computation units, %d Mhz clock, %d GFlops approximate speed",
		d.Name,
		d.Type,
		d.Vendor,
		d.Version,
		d.ComputeUnits,
		d.ClockSpeed,
		d.Speed,
	)
}

// Information about a system's opencl platform and supported devices.
type PlatformInfo struct {
	Profile    string
	Version    string
	Name       string
	Vendor     string
	Extensions string
	Devices    []DeviceInfo
}

func (pl PlatformInfo) String() string {
	var buf bytes.Buffer

	buf.WriteString(
		fmt.Sprintf(
			"Version:    %s\nName:       %s\nVendor:     %s\nExtensions: %s\nDevices:\n",
			pl.Version,
			pl.Name,
			pl.Vendor,
			pl.Extensions,
		),
	)

	for dIdx, d := range pl.Devices {
		buf.WriteString(fmt.Sprintf("  Device %02d:\n", dIdx))
		buf.WriteString(indentRegex.ReplaceAllString(d.String(), "    "))
		buf.WriteString("\n\n")
	}

	return buf.String()
}

// Get information about supported opencl platforms and devices.
func GetPlatformInfo() ([]PlatformInfo, error) {
	pids := make([]cl.PlatformID, platformBufferSize)
	pidCount := uint32(0)
	errCode := cl.ErrorCode(cl.GetPlatformIDs(uint32(len(pids)), &pids[0], &pidCount))
	if errCode != cl.SUCCESS {
		return nil, fmt.Errorf("opencl: could not enumerate platforms (error: %s; code %d)", ErrorName(errCode), errCode)
	}

	data := make([]byte, dataBufferSize)
	dataLen := uint64(0)

	infoList := make([]PlatformInfo, int(pidCount))
	for pIdx := 0; pIdx < int(pidCount); pIdx++ {
		pid := pids[pIdx]
		infoList[pIdx].Devices = make([]DeviceInfo, 0)

		dataLen = 0
		cl.GetPlatformInfo(pid, cl.PLATFORM_PROFILE, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Profile = trimNull(data, dataLen)

		dataLen = 0
		cl.GetPlatformInfo(pid, cl.PLATFORM_VERSION, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Version = trimNull(data, dataLen)

		dataLen = 0
		cl.GetPlatformInfo(pid, cl.PLATFORM_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Name = trimNull(data, dataLen)

		dataLen = 0
		cl.GetPlatformInfo(pid, cl.PLATFORM_VENDOR, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Vendor = trimNull(data, dataLen)

		dataLen = 0
		cl.GetPlatformInfo(pid, cl.PLATFORM_EXTENSIONS, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Extensions = trimNull(data, dataLen)

		for _, dt := range []device.DeviceType{device.CpuDevice, device.GpuDevice, device.OtherDevice} {
			devices, err := getDevices(pid, dt)
			if err != nil {
				return nil, err
			}
			infoList[pIdx].Devices = append(infoList[pIdx].Devices, devices...)
		}
	}

	return infoList, nil
}

// Enumerate the platform devices of a single type.
func getDevices(pid cl.PlatformID, dt device.DeviceType) ([]DeviceInfo, error) {
	ids := make([]cl.DeviceId, deviceBufferSize)
	deviceCount := uint32(0)
	switch dt {
	case device.CpuDevice:
		cl.GetDeviceIDs(pid, cl.DEVICE_TYPE_CPU, uint32(deviceBufferSize), &ids[0], &deviceCount)
	case device.GpuDevice:
		cl.GetDeviceIDs(pid, cl.DEVICE_TYPE_GPU, uint32(deviceBufferSize), &ids[0], &deviceCount)
	default:
		cl.GetDeviceIDs(pid, cl.DEVICE_TYPE_ACCELERATOR, uint32(deviceBufferSize), &ids[0], &deviceCount)
	}

	data := make([]byte, dataBufferSize)
	dataLen := uint64(0)

	list := make([]DeviceInfo, 0, deviceCount)
	for dIdx := 0; dIdx < int(deviceCount); dIdx++ {
		id := ids[dIdx]
		d := DeviceInfo{Type: dt}

		dataLen = 0
		cl.GetDeviceInfo(id, cl.DEVICE_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		d.Name = trimNull(data, dataLen)

		dataLen = 0
		cl.GetDeviceInfo(id, cl.DEVICE_VENDOR, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		d.Vendor = trimNull(data, dataLen)

		dataLen = 0
		cl.GetDeviceInfo(id, cl.DEVICE_VERSION, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		d.Version = trimNull(data, dataLen)

		if err := detectSpeed(id, &d); err != nil {
			return nil, err
		}
		list = append(list, d)
	}

	return list, nil
}

// Calculate theoretical device speed as: compute units * 2ops/cycle * clock speed
func detectSpeed(id cl.DeviceId, d *DeviceInfo) error {
	errCode := cl.GetDeviceInfo(id, cl.DEVICE_MAX_COMPUTE_UNITS, 4, unsafe.Pointer(&d.ComputeUnits), nil)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): could not query MAX_COMPUTE_UNITS (error: %s; code %d)", d.Name, ErrorName(errCode), errCode)
	}
	errCode = cl.GetDeviceInfo(id, cl.DEVICE_MAX_CLOCK_FREQUENCY, 4, unsafe.Pointer(&d.ClockSpeed), nil)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): could not query MAX_CLOCK_FREQUENCY (error: %s; code %d)", d.Name, ErrorName(errCode), errCode)
	}
	d.Speed = estimateSpeed(d.ComputeUnits, d.ClockSpeed)

	return nil
}

func estimateSpeed(compUnits, clockSpeed uint32) uint32 {
	return compUnits * 2 * clockSpeed / 1000
}

// Convert a string returned by the runtime, dropping the trailing NUL.
func trimNull(data []byte, dataLen uint64) string {
	if dataLen == 0 || dataLen > uint64(len(data)) {
		return ""
	}
	return string(data[0 : dataLen-1])
}
