package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lanyuliuyun/ray-trace/log"
	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
	"github.com/lanyuliuyun/ray-trace/tracer/soft"
)

// A render mode paired with the backend that should execute it.
type Operation struct {
	Backend Backend
	Mode    tracer.Mode
}

// Implements Stringer.
func (op Operation) String() string {
	return fmt.Sprintf("%s (%s)", op.Mode, op.Backend)
}

// Get all operations in selection order: the gradient followed by the
// depth image, each on the scalar and then the accelerated backend.
func Operations() []Operation {
	ops := make([]Operation, 0, int(numBackends)*len(tracer.Modes()))
	for _, mode := range tracer.Modes() {
		for b := Backend(0); b < numBackends; b++ {
			ops = append(ops, Operation{Backend: b, Mode: mode})
		}
	}
	return ops
}

type Renderer interface {
	// Render a new frame using the given operation.
	Render(Operation) (*tracer.Frame, error)

	// Returns true if the operation can be executed.
	Supports(Operation) bool

	// Get render statistics.
	Stats() FrameStats

	// Shutdown renderer and any attached tracer.
	Close()
}

// The default renderer owns one tracer per available backend.
type defaultRenderer struct {
	logger log.Logger

	sync.Mutex

	options Options
	scene   *scene.Scene

	tracers [numBackends]tracer.Tracer
	session *opencl.Session

	stats     FrameStats
	tracerIdx [numBackends]int
}

// Create a renderer for sc. The scalar backend is always attached. If drv
// is not nil an opencl session is created for the accelerated backend; when
// no suitable device exists the renderer logs a warning and continues with
// the scalar backend only. Any other session error is returned.
func NewDefault(sc *scene.Scene, drv device.Driver, opts Options) (Renderer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		logger:  log.New("renderer"),
		options: opts,
		scene:   sc,
	}
	r.stats.FrameW, r.stats.FrameH = opts.FrameW, opts.FrameH

	r.attach(Scalar, soft.NewTracer("scalar", sc))

	if drv != nil {
		session, err := opencl.NewSession(drv, opencl.Options{
			ProgramPath:        opts.ProgramPath,
			FrameW:             opts.FrameW,
			FrameH:             opts.FrameH,
			DeviceType:         opts.DeviceType,
			BlackListedDevices: opts.BlackListedDevices,
		})

		var noDevErr *device.NoSuitableDeviceError
		switch {
		case errors.As(err, &noDevErr):
			r.logger.Warningf("opencl backend disabled: %v", err)
		case err != nil:
			r.Close()
			return nil, err
		default:
			r.session = session
			r.attach(Accelerated, opencl.NewTracer(session.DeviceName(), session, sc))
		}
	}

	if r.tracers[opts.Backend] == nil {
		r.logger.Warningf("%s backend is not available; using %s", opts.Backend, Scalar)
		r.options.Backend = Scalar
	}
	r.stats.Operation = Operation{Backend: r.options.Backend, Mode: opts.Mode}

	return r, nil
}

func (r *defaultRenderer) attach(b Backend, tr tracer.Tracer) {
	r.tracers[b] = tr
	r.tracerIdx[b] = len(r.stats.Tracers)
	r.stats.Tracers = append(r.stats.Tracers, TracerStat{Id: tr.Id(), Backend: b})
	r.logger.Infof("attached %s tracer %q", b, tr.Id())
}

// Render a frame into a newly allocated buffer. On failure no frame is
// returned and the tracer stays usable for subsequent calls.
func (r *defaultRenderer) Render(op Operation) (*tracer.Frame, error) {
	r.Lock()
	defer r.Unlock()

	if op.Backend >= numBackends || r.tracers[op.Backend] == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, op.Backend)
	}

	frame := tracer.NewFrame(r.options.FrameW, r.options.FrameH, r.options.RowAlign)
	stat := &r.stats.Tracers[r.tracerIdx[op.Backend]]

	start := time.Now()
	err := tracer.Render(r.tracers[op.Backend], op.Mode, frame)
	if err != nil {
		stat.Failures++
		return nil, err
	}
	elapsed := time.Since(start)

	stat.Frames++
	stat.RenderTime = elapsed
	r.stats.Operation = op
	r.stats.RenderTime = elapsed

	r.logger.Infof("rendered %s in %d ms", op, elapsed.Nanoseconds()/1e6)
	return frame, nil
}

func (r *defaultRenderer) Supports(op Operation) bool {
	r.Lock()
	defer r.Unlock()

	switch {
	case op.Backend >= numBackends || r.tracers[op.Backend] == nil:
		return false
	case op.Backend == Accelerated:
		return r.session.HasKernel(op.Mode)
	}

	for _, mode := range tracer.Modes() {
		if mode == op.Mode {
			return true
		}
	}
	return false
}

func (r *defaultRenderer) Stats() FrameStats {
	r.Lock()
	defer r.Unlock()

	stats := r.stats
	stats.Tracers = append([]TracerStat(nil), r.stats.Tracers...)
	return stats
}

func (r *defaultRenderer) Close() {
	r.Lock()
	defer r.Unlock()

	for b, tr := range r.tracers {
		if tr != nil {
			tr.Close()
			r.tracers[b] = nil
		}
	}
	r.session = nil
}
