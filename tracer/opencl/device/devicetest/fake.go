// Package devicetest provides an in-memory implementation of the device
// driver interfaces. Kernels are plain Go functions invoked once per work
// item, which allows exercising resource management and dispatch without
// opencl hardware.
package devicetest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

// Identifies a driver operation for failure injection.
type Op string

const (
	OpPlatforms     Op = "platforms"
	OpCreateContext Op = "create context"
	OpImageFormats  Op = "image formats"
	OpCreateQueue   Op = "create queue"
	OpCreateProgram Op = "create program"
	OpBuild         Op = "build"
	OpCreateBuffer  Op = "create buffer"
	OpCreateImage   Op = "create image"
	OpWriteBuffer   Op = "write buffer"
	OpReadImage     Op = "read image"
	OpSetArg        Op = "set arg"
	OpEnqueue       Op = "enqueue"
	OpFinish        Op = "finish"
)

var (
	ErrInvalidKernelName    = errors.New("fake: invalid kernel name")
	ErrInvalidWorkGroupSize = errors.New("fake: global work size is not a multiple of the local work size")
	ErrInvalidImageFormat   = errors.New("fake: image format not supported")
	ErrMissingKernelArg     = errors.New("fake: kernel argument not set")
)

// A kernel body. It is invoked for every (x, y) in the global work size
// with the bound arguments; buffers and images are passed as *Mem.
type KernelFunc func(args []interface{}, x, y int)

// A fake opencl runtime.
type Driver struct {
	// Kernels defined by any program built with this driver.
	Kernels map[string]KernelFunc

	// The log returned by program builds.
	BuildLog string

	// Operations that should fail with the mapped error.
	Failures map[Op]error

	platforms []*Platform

	mu             sync.Mutex
	live           int
	released       []string
	doubleReleases int
	buildOptions   []string
	sources        []string
}

// Create a driver exposing a single platform with the given devices.
func NewDriver(devices ...*Device) *Driver {
	drv := &Driver{
		Kernels:  make(map[string]KernelFunc),
		Failures: make(map[Op]error),
	}
	drv.AddPlatform("Fake Platform", devices...)
	return drv
}

// Add a platform with the given devices.
func (drv *Driver) AddPlatform(name string, devices ...*Device) {
	p := &Platform{name: name}
	for _, d := range devices {
		d.drv = drv
		p.devices = append(p.devices, d)
	}
	drv.platforms = append(drv.platforms, p)
}

// Make op fail with err.
func (drv *Driver) Fail(op Op, err error) {
	drv.Failures[op] = err
}

// Implements device.Driver.
func (drv *Driver) Platforms() ([]device.Platform, error) {
	if err := drv.failure(OpPlatforms); err != nil {
		return nil, err
	}

	list := make([]device.Platform, len(drv.platforms))
	for i, p := range drv.platforms {
		list[i] = p
	}
	return list, nil
}

// Get the number of objects that have been created but not released.
func (drv *Driver) Live() int {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return drv.live
}

// Get the labels of released objects in release order.
func (drv *Driver) Released() []string {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return append([]string(nil), drv.released...)
}

// Get the number of Release calls on already released objects.
func (drv *Driver) DoubleReleases() int {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return drv.doubleReleases
}

// Get the options passed to every program build.
func (drv *Driver) BuildOptions() []string {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return append([]string(nil), drv.buildOptions...)
}

// Get the source of every created program.
func (drv *Driver) Sources() []string {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return append([]string(nil), drv.sources...)
}

// Clear the release log.
func (drv *Driver) ResetReleased() {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	drv.released = nil
}

func (drv *Driver) failure(op Op) error {
	if err, ok := drv.Failures[op]; ok && err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (drv *Driver) newObject(label string) object {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	drv.live++
	return object{drv: drv, label: label}
}

// Embedded by every fake handle to track its lifetime.
type object struct {
	drv      *Driver
	label    string
	released bool
}

func (o *object) Release() {
	o.drv.mu.Lock()
	defer o.drv.mu.Unlock()

	if o.released {
		o.drv.doubleReleases++
		return
	}
	o.released = true
	o.drv.live--
	o.drv.released = append(o.drv.released, o.label)
}

type Platform struct {
	name    string
	devices []*Device
}

func (p *Platform) Name() string {
	return p.name
}

func (p *Platform) Devices(typeMask device.DeviceType) ([]device.DeviceHandle, error) {
	list := make([]device.DeviceHandle, 0)
	for _, d := range p.devices {
		if d.typ&typeMask == d.typ {
			list = append(list, d)
		}
	}
	return list, nil
}

type Device struct {
	drv *Driver

	name    string
	typ     device.DeviceType
	formats []device.ImageFormat
}

// Create a fake GPU device supporting the given image formats.
func GPU(name string, formats ...device.ImageFormat) *Device {
	return &Device{name: name, typ: device.GpuDevice, formats: formats}
}

// Create a fake CPU device supporting the given image formats.
func CPU(name string, formats ...device.ImageFormat) *Device {
	return &Device{name: name, typ: device.CpuDevice, formats: formats}
}

func (d *Device) Name() string {
	return d.name
}

func (d *Device) Vendor() string {
	return "Fake Vendor"
}

func (d *Device) Version() string {
	return "OpenCL 1.2 fake"
}

func (d *Device) Type() device.DeviceType {
	return d.typ
}

func (d *Device) CreateContext() (device.ContextHandle, error) {
	if err := d.drv.failure(OpCreateContext); err != nil {
		return nil, err
	}
	return &Context{object: d.drv.newObject("context"), device: d}, nil
}

type Context struct {
	object
	device *Device
}

func (c *Context) SupportedImageFormats(flags device.MemFlag) ([]device.ImageFormat, error) {
	if err := c.drv.failure(OpImageFormats); err != nil {
		return nil, err
	}
	return append([]device.ImageFormat(nil), c.device.formats...), nil
}

func (c *Context) CreateCommandQueue() (device.QueueHandle, error) {
	if err := c.drv.failure(OpCreateQueue); err != nil {
		return nil, err
	}
	return &Queue{object: c.drv.newObject("queue")}, nil
}

func (c *Context) CreateProgram(source string) (device.ProgramHandle, error) {
	if err := c.drv.failure(OpCreateProgram); err != nil {
		return nil, err
	}

	c.drv.mu.Lock()
	c.drv.sources = append(c.drv.sources, source)
	c.drv.mu.Unlock()

	return &Program{object: c.drv.newObject("program")}, nil
}

func (c *Context) CreateBuffer(flags device.MemFlag, size int) (device.MemHandle, error) {
	if err := c.drv.failure(OpCreateBuffer); err != nil {
		return nil, err
	}
	return &Mem{object: c.drv.newObject("buffer"), Flags: flags, Data: make([]byte, size)}, nil
}

func (c *Context) CreateImage2D(flags device.MemFlag, format device.ImageFormat, width, height int) (device.MemHandle, error) {
	if err := c.drv.failure(OpCreateImage); err != nil {
		return nil, err
	}

	supported := false
	for _, f := range c.device.formats {
		if f == format {
			supported = true
			break
		}
	}
	if !supported {
		return nil, ErrInvalidImageFormat
	}

	return &Mem{
		object: c.drv.newObject("image"),
		Flags:  flags,
		Data:   make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}, nil
}

// A fake buffer or image. Image pixels are stored as tightly packed 4-byte
// texels.
type Mem struct {
	object

	Flags  device.MemFlag
	Data   []byte
	Width  int
	Height int
}

// Write the 4 channels of an image texel. Writes outside the image panic.
func (m *Mem) WriteTexel(x, y int, c0, c1, c2, c3 uint8) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		panic(fmt.Sprintf("fake: texel (%d, %d) is outside the %dx%d image", x, y, m.Width, m.Height))
	}
	o := (y*m.Width + x) * 4
	m.Data[o], m.Data[o+1], m.Data[o+2], m.Data[o+3] = c0, c1, c2, c3
}

type Queue struct {
	object
}

func (q *Queue) WriteBuffer(buf device.MemHandle, offset int, data []byte) error {
	if err := q.drv.failure(OpWriteBuffer); err != nil {
		return err
	}

	m := buf.(*Mem)
	if offset+len(data) > len(m.Data) {
		return fmt.Errorf("fake: write of %d bytes at offset %d overflows buffer of size %d", len(data), offset, len(m.Data))
	}
	copy(m.Data[offset:], data)
	return nil
}

func (q *Queue) ReadImage(img device.MemHandle, width, height, rowPitch int, dst []byte) error {
	if err := q.drv.failure(OpReadImage); err != nil {
		return err
	}

	m := img.(*Mem)
	if width > m.Width || height > m.Height {
		return fmt.Errorf("fake: read region %dx%d exceeds image size %dx%d", width, height, m.Width, m.Height)
	}
	for y := 0; y < height; y++ {
		copy(dst[y*rowPitch:y*rowPitch+width*4], m.Data[y*m.Width*4:])
	}
	return nil
}

func (q *Queue) EnqueueKernel(k device.KernelHandle, globalWorkSize, localWorkSize []int) error {
	if err := q.drv.failure(OpEnqueue); err != nil {
		return err
	}

	kernel := k.(*Kernel)
	if len(globalWorkSize) != 2 {
		return fmt.Errorf("fake: only 2D kernels are supported")
	}
	if localWorkSize != nil {
		if len(localWorkSize) != 2 ||
			globalWorkSize[0]%localWorkSize[0] != 0 ||
			globalWorkSize[1]%localWorkSize[1] != 0 {
			return ErrInvalidWorkGroupSize
		}
	}

	args := make([]interface{}, len(kernel.args))
	for i, arg := range kernel.args {
		if arg == nil {
			return fmt.Errorf("%w: index %d", ErrMissingKernelArg, i)
		}
		args[i] = arg
	}

	for y := 0; y < globalWorkSize[1]; y++ {
		for x := 0; x < globalWorkSize[0]; x++ {
			kernel.fn(args, x, y)
		}
	}
	return nil
}

func (q *Queue) Finish() error {
	return q.drv.failure(OpFinish)
}

type Program struct {
	object
}

func (p *Program) Build(options string) (string, error) {
	p.drv.mu.Lock()
	p.drv.buildOptions = append(p.drv.buildOptions, options)
	p.drv.mu.Unlock()

	return p.drv.BuildLog, p.drv.failure(OpBuild)
}

func (p *Program) CreateKernel(name string) (device.KernelHandle, error) {
	fn, ok := p.drv.Kernels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKernelName, name)
	}
	return &Kernel{object: p.drv.newObject("kernel:" + name), fn: fn}, nil
}

type Kernel struct {
	object
	fn   KernelFunc
	args []interface{}
}

func (k *Kernel) SetArg(index int, value interface{}) error {
	if err := k.drv.failure(OpSetArg); err != nil {
		return err
	}

	for len(k.args) <= index {
		k.args = append(k.args, nil)
	}
	k.args[index] = value
	return nil
}
