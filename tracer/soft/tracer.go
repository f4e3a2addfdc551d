package soft

import (
	"fmt"
	"time"

	"github.com/lanyuliuyun/ray-trace/log"
	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
)

// A tracer that evaluates every pixel sequentially on the host CPU.
type Tracer struct {
	logger log.Logger

	id    string
	scene *scene.Scene
}

// Create a new scalar tracer for the given scene.
func NewTracer(id string, sc *scene.Scene) *Tracer {
	return &Tracer{
		logger: log.New(fmt.Sprintf("soft tracer (%s)", id)),
		id:     id,
		scene:  sc,
	}
}

// Get tracer id.
func (tr *Tracer) Id() string {
	return tr.id
}

// Render a red/green gradient. Alpha is written as 1 to stay byte compatible
// with the render_gradient kernel.
func (tr *Tracer) RenderGradient(frame *tracer.Frame) error {
	if err := frame.Validate(); err != nil {
		return err
	}

	start := time.Now()
	for j := 0; j < frame.Height; j++ {
		for i := 0; i < frame.Width; i++ {
			frame.SetPixel(i, j, tracer.GradientColor(i, j, frame.Width, frame.Height))
		}
	}
	elapsed := time.Since(start)

	tr.logger.Debugf("render_gradient, width: %d, height: %d, time elapsed: %d ms", frame.Width, frame.Height, elapsed.Nanoseconds()/1e6)
	return nil
}

// Render the sphere as a grayscale depth image over a checkerboard. Pixels
// map to the image plane point (i, h-j, 0).
func (tr *Tracer) RenderProjectDepth(frame *tracer.Frame) error {
	if err := frame.Validate(); err != nil {
		return err
	}

	camera := tr.scene.Camera
	sphere := tr.scene.Sphere
	h := float32(frame.Height)

	start := time.Now()
	for j := 0; j < frame.Height; j++ {
		for i := 0; i < frame.Width; i++ {
			color := tracer.CheckerColor(i, j)

			ray := camera.GenerateRay(scene.Point{float32(i), h - float32(j), 0})
			if ray.Valid() {
				if res := sphere.Intersect(ray); res.Hit {
					v := tracer.DepthShade(res.Distance)
					color.R, color.G, color.B = v, v, v
				}
			}

			frame.SetPixel(i, j, color)
		}
	}
	elapsed := time.Since(start)

	tr.logger.Debugf("render_project_depth, width: %d, height: %d, time elapsed: %d ms", frame.Width, frame.Height, elapsed.Nanoseconds()/1e6)
	return nil
}

// The scalar tracer holds no external resources.
func (tr *Tracer) Close() {
}
