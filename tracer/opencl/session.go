package opencl

import (
	"fmt"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/lanyuliuyun/ray-trace/asset"
	"github.com/lanyuliuyun/ray-trace/log"
	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

const (
	relativePathToProgram = "CL/render.cl"
)

// Session lifecycle states.
type State uint8

const (
	Uninitialized State = iota
	DeviceSelected
	ProgramReady
	ImageReady
	Live
	Disposed
	Failed
)

// Implements Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case DeviceSelected:
		return "device selected"
	case ProgramReady:
		return "program ready"
	case ImageReady:
		return "image ready"
	case Live:
		return "live"
	case Disposed:
		return "disposed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Session configuration.
type Options struct {
	// Path or http/https URL of the program source. Defaults to the
	// program shipped with this package.
	ProgramPath string

	// Output image size.
	FrameW int
	FrameH int

	// Device types to consider; defaults to GPU devices.
	DeviceType device.DeviceType

	// Skip devices whose names contain any of these values.
	BlackListedDevices []string
}

// Get the path to the program shipped with this package.
func DefaultProgramPath() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return path.Join(path.Dir(thisFile), relativePathToProgram)
}

// An accelerator session owns every opencl handle used for rendering: the
// selected device with its context, queue and program, the render kernels
// and the output image. All handles are released together by Close.
type Session struct {
	logger log.Logger

	sync.Mutex

	state State

	// States visited since creation.
	history []State

	// The device associated with this session.
	device *device.Device

	// The resolved kernels and output image.
	resources *deviceResources
}

// Select a device, build the program, resolve the render kernels and
// allocate the output image. If any step fails all acquired handles are
// released and the error is returned.
func NewSession(drv device.Driver, opts Options) (*Session, error) {
	s := &Session{
		logger: log.New("opencl session"),
	}

	if err := s.init(drv, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) init(drv device.Driver, opts Options) error {
	var err error
	s.Lock()
	defer s.Unlock()

	s.setState(Uninitialized)

	query := device.DefaultQuery()
	if opts.DeviceType != 0 {
		query.Type = opts.DeviceType
	}
	query.BlackList = opts.BlackListedDevices
	if opts.ProgramPath == "" {
		opts.ProgramPath = DefaultProgramPath()
	}

	// Select device and create its command queue
	s.device, err = device.SelectDevice(drv, query)
	if err != nil {
		s.fail(err)
		return err
	}

	err = s.device.Init()
	if err != nil {
		s.fail(err)
		return err
	}
	s.setState(DeviceSelected)

	// Load and build program
	prog, err := asset.LoadProgram(opts.ProgramPath)
	if err != nil {
		err = fmt.Errorf("opencl session: could not load program: %w", err)
		s.fail(err)
		return err
	}

	err = s.device.BuildProgram(prog.Source, prog.BuildOptions())
	if err != nil {
		s.fail(err)
		return err
	}

	s.resources = newDeviceResources(s.device)
	for kType, kErr := range s.resources.kernelErrs {
		if kErr != nil {
			s.logger.Warningf("no %s kernel was found; %s rendering is disabled: %v", kernelType(kType), modeForKernel(kernelType(kType)), kErr)
		}
	}
	if s.resources.numKernels() == 0 {
		s.logger.Errorf("program %s does not define any render kernels", prog.Path)
	}
	s.setState(ProgramReady)

	// Allocate output image
	err = s.resources.allocateImage(opts.FrameW, opts.FrameH)
	if err != nil {
		s.fail(err)
		return err
	}
	s.setState(ImageReady)

	s.setState(Live)
	return nil
}

// Get the current session state.
func (s *Session) State() State {
	s.Lock()
	defer s.Unlock()
	return s.state
}

// Get the name of the selected device.
func (s *Session) DeviceName() string {
	s.Lock()
	defer s.Unlock()
	if s.device == nil {
		return ""
	}
	return s.device.Name
}

// Returns true if the program defines the kernel for the given mode.
func (s *Session) HasKernel(mode tracer.Mode) bool {
	s.Lock()
	defer s.Unlock()

	kType, err := kernelForMode(mode)
	if err != nil || s.state != Live {
		return false
	}
	_, err = s.resources.kernel(kType)
	return err == nil
}

// Recreate the output image for a new frame size. The existing image is
// kept if the allocation fails.
func (s *Session) Resize(frameW, frameH int) error {
	s.Lock()
	defer s.Unlock()

	if s.state != Live {
		return ErrSessionClosed
	}
	return s.resources.allocateImage(frameW, frameH)
}

// Render a frame using the kernel for the given mode. Errors leave the
// session live.
func (s *Session) Render(mode tracer.Mode, frame *tracer.Frame, sc *scene.Scene) (time.Duration, error) {
	s.Lock()
	defer s.Unlock()

	if s.state != Live {
		return 0, ErrSessionClosed
	}

	switch mode {
	case tracer.Gradient:
		return s.resources.RenderGradient(frame)
	case tracer.ProjectDepth:
		return s.resources.RenderProjectDepth(frame, sc)
	}
	_, err := kernelForMode(mode)
	return 0, err
}

// Release all session resources. Calling Close more than once is safe.
func (s *Session) Close() {
	s.Lock()
	defer s.Unlock()

	if s.state == Disposed {
		return
	}
	s.cleanup()
	s.setState(Disposed)
}

// Move to the failed state and unwind. This method is meant to be called
// while holding s.Lock()
func (s *Session) fail(err error) {
	s.logger.Errorf("initialization failed while in state %q: %v", s.state, err)
	s.setState(Failed)
	s.cleanup()
	s.setState(Disposed)
}

// Release the image, kernels, program, queue and context in that order.
// This method is meant to be called while holding s.Lock()
func (s *Session) cleanup() {
	if s.resources != nil {
		s.resources.Close()
		s.resources = nil
	}

	if s.device != nil {
		s.device.Close()
		s.device = nil
	}
}

func (s *Session) setState(state State) {
	s.state = state
	s.history = append(s.history, state)
	s.logger.Debugf("session state: %s", state)
}

func modeForKernel(kt kernelType) tracer.Mode {
	if kt == renderProjectDepth {
		return tracer.ProjectDepth
	}
	return tracer.Gradient
}
