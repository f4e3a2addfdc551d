package opencl

import (
	"fmt"

	"github.com/lanyuliuyun/ray-trace/log"
	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
)

// A tracer that renders frames on an opencl device.
type Tracer struct {
	logger log.Logger

	// The session providing the device resources. It is owned by the
	// tracer and released by Close.
	session *Session

	// The tracer id.
	id string

	// The scene uploaded for depth rendering.
	scene *scene.Scene
}

// Create a new opencl tracer that renders sc using the given session.
func NewTracer(id string, session *Session, sc *scene.Scene) *Tracer {
	return &Tracer{
		logger:  log.New(fmt.Sprintf("opencl tracer (%s)", session.DeviceName())),
		session: session,
		id:      id,
		scene:   sc,
	}
}

// Get tracer id.
func (tr *Tracer) Id() string {
	return tr.id
}

// Get the session used by this tracer.
func (tr *Tracer) Session() *Session {
	return tr.session
}

// Render the gradient on the device.
func (tr *Tracer) RenderGradient(frame *tracer.Frame) error {
	return tr.render(tracer.Gradient, frame)
}

// Render the sphere depth image on the device.
func (tr *Tracer) RenderProjectDepth(frame *tracer.Frame) error {
	return tr.render(tracer.ProjectDepth, frame)
}

func (tr *Tracer) render(mode tracer.Mode, frame *tracer.Frame) error {
	elapsed, err := tr.session.Render(mode, frame, tr.scene)
	if err != nil {
		return err
	}

	kType, _ := kernelForMode(mode)
	tr.logger.Debugf("%s, width: %d, height: %d, time elapsed: %d ms", kType, frame.Width, frame.Height, elapsed.Nanoseconds()/1e6)
	return nil
}

// Shutdown the tracer and release its session.
func (tr *Tracer) Close() {
	tr.session.Close()
}
