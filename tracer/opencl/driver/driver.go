// Package driver implements the device driver interfaces on top of the
// system opencl runtime.
package driver

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

// The opencl runtime driver.
type Driver struct{}

// Create a driver backed by the installed opencl runtime.
func New() *Driver {
	return &Driver{}
}

func (drv *Driver) Platforms() ([]device.Platform, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, err
	}

	list := make([]device.Platform, len(platforms))
	for i, p := range platforms {
		list[i] = &platform{p}
	}
	return list, nil
}

type platform struct {
	p *cl.Platform
}

func (p *platform) Name() string {
	return p.p.Name()
}

func (p *platform) Devices(typeMask device.DeviceType) ([]device.DeviceHandle, error) {
	devices, err := p.p.GetDevices(toDeviceType(typeMask))
	if err == cl.ErrDeviceNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	list := make([]device.DeviceHandle, 0, len(devices))
	for _, d := range devices {
		list = append(list, &deviceHandle{d})
	}
	return list, nil
}

type deviceHandle struct {
	d *cl.Device
}

func (h *deviceHandle) Name() string {
	return h.d.Name()
}

func (h *deviceHandle) Vendor() string {
	return h.d.Vendor()
}

func (h *deviceHandle) Version() string {
	return h.d.Version()
}

func (h *deviceHandle) Type() device.DeviceType {
	t := h.d.Type()
	switch {
	case t&cl.DeviceTypeGPU != 0:
		return device.GpuDevice
	case t&cl.DeviceTypeCPU != 0:
		return device.CpuDevice
	}
	return device.OtherDevice
}

func (h *deviceHandle) CreateContext() (device.ContextHandle, error) {
	ctx, err := cl.CreateContext([]*cl.Device{h.d})
	if err != nil {
		return nil, err
	}
	return &context{ctx: ctx, device: h.d}, nil
}

type context struct {
	ctx    *cl.Context
	device *cl.Device
}

func (c *context) SupportedImageFormats(flags device.MemFlag) ([]device.ImageFormat, error) {
	formats, err := c.ctx.GetSupportedImageFormats(toMemFlag(flags), cl.MemObjectTypeImage2D)
	if err != nil {
		return nil, err
	}

	list := make([]device.ImageFormat, len(formats))
	for i, f := range formats {
		list[i] = device.ImageFormat{
			Order: device.ChannelOrder(f.ChannelOrder),
			Type:  device.ChannelType(f.ChannelDataType),
		}
	}
	return list, nil
}

func (c *context) CreateCommandQueue() (device.QueueHandle, error) {
	q, err := c.ctx.CreateCommandQueue(c.device, 0)
	if err != nil {
		return nil, err
	}
	return &queue{q}, nil
}

func (c *context) CreateProgram(source string) (device.ProgramHandle, error) {
	p, err := c.ctx.CreateProgramWithSource([]string{source})
	if err != nil {
		return nil, err
	}
	return &program{p: p, device: c.device}, nil
}

func (c *context) CreateBuffer(flags device.MemFlag, size int) (device.MemHandle, error) {
	buf, err := c.ctx.CreateEmptyBuffer(toMemFlag(flags), size)
	if err != nil {
		return nil, err
	}
	return &mem{buf}, nil
}

func (c *context) CreateImage2D(flags device.MemFlag, format device.ImageFormat, width, height int) (device.MemHandle, error) {
	img, err := c.ctx.CreateImageSimple(
		toMemFlag(flags),
		width,
		height,
		cl.ChannelOrder(format.Order),
		cl.ChannelDataType(format.Type),
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &mem{img}, nil
}

func (c *context) Release() {
	c.ctx.Release()
}

type queue struct {
	q *cl.CommandQueue
}

func (q *queue) WriteBuffer(buf device.MemHandle, offset int, data []byte) error {
	ev, err := q.q.EnqueueWriteBuffer(buf.(*mem).m, true, offset, len(data), unsafe.Pointer(&data[0]), nil)
	releaseEvent(ev)
	return err
}

func (q *queue) ReadImage(img device.MemHandle, width, height, rowPitch int, dst []byte) error {
	ev, err := q.q.EnqueueReadImage(img.(*mem).m, true, [3]int{0, 0, 0}, [3]int{width, height, 1}, rowPitch, 0, dst, nil)
	releaseEvent(ev)
	return err
}

func (q *queue) EnqueueKernel(k device.KernelHandle, globalWorkSize, localWorkSize []int) error {
	ev, err := q.q.EnqueueNDRangeKernel(k.(*kernel).k, nil, globalWorkSize, localWorkSize, nil)
	releaseEvent(ev)
	return err
}

func (q *queue) Finish() error {
	return q.q.Finish()
}

func (q *queue) Release() {
	q.q.Release()
}

type program struct {
	p      *cl.Program
	device *cl.Device
}

func (p *program) Build(options string) (string, error) {
	err := p.p.BuildProgram([]*cl.Device{p.device}, options)
	var buildErr cl.BuildError
	if errors.As(err, &buildErr) {
		return string(buildErr), err
	}
	return "", err
}

func (p *program) CreateKernel(name string) (device.KernelHandle, error) {
	k, err := p.p.CreateKernel(name)
	if err != nil {
		return nil, err
	}
	return &kernel{k}, nil
}

func (p *program) Release() {
	p.p.Release()
}

type kernel struct {
	k *cl.Kernel
}

func (k *kernel) SetArg(index int, value interface{}) error {
	switch v := value.(type) {
	case *mem:
		return k.k.SetArgBuffer(index, v.m)
	case int32, uint32, float32:
		return k.k.SetArg(index, v)
	}
	return fmt.Errorf("driver: unsupported kernel argument type %T", value)
}

func (k *kernel) Release() {
	k.k.Release()
}

type mem struct {
	m *cl.MemObject
}

func (m *mem) Release() {
	m.m.Release()
}

func releaseEvent(ev *cl.Event) {
	if ev != nil {
		ev.Release()
	}
}

func toDeviceType(typeMask device.DeviceType) cl.DeviceType {
	if typeMask == device.AllDevices {
		return cl.DeviceTypeAll
	}

	var t cl.DeviceType
	if typeMask&device.CpuDevice != 0 {
		t |= cl.DeviceTypeCPU
	}
	if typeMask&device.GpuDevice != 0 {
		t |= cl.DeviceTypeGPU
	}
	if typeMask&device.OtherDevice != 0 {
		t |= cl.DeviceTypeAccelerator
	}
	return t
}

func toMemFlag(flags device.MemFlag) cl.MemFlag {
	var f cl.MemFlag
	if flags&device.MemReadWrite != 0 {
		f |= cl.MemReadWrite
	}
	if flags&device.MemWriteOnly != 0 {
		f |= cl.MemWriteOnly
	}
	if flags&device.MemReadOnly != 0 {
		f |= cl.MemReadOnly
	}
	return f
}
