// Package interactive presents rendered frames in an opengl window and lets
// the user switch between render operations with the keyboard.
package interactive

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/lanyuliuyun/ray-trace/log"
	"github.com/lanyuliuyun/ray-trace/renderer"
	"github.com/lanyuliuyun/ray-trace/tracer"
)

const (
	// Height in pixels for the render time overlay.
	stackedSeriesHeight uint32 = 40

	// Max time to block waiting for window events.
	eventTimeout = 0.25
)

var (
	ErrNoFrame = errors.New("interactive: no frame could be rendered")
)

func init() {
	// glfw calls must be made from the main thread.
	runtime.LockOSThread()
}

// An opengl window displaying the output of a renderer.
type Viewer struct {
	logger   log.Logger
	renderer renderer.Renderer

	frameW int32
	frameH int32

	// opengl handles
	window    *glfw.Window
	fbTexture uint32
	texFbo    uint32

	// The operation whose output is on screen and the one to render next.
	current   renderer.Operation
	requested *renderer.Operation

	// Display options
	showUI           bool
	renderTimeSeries *stackedSeries
}

// Open a window sized to the renderer frame.
func New(r renderer.Renderer, opts renderer.Options) (*Viewer, error) {
	v := &Viewer{
		logger:   log.New("interactive"),
		renderer: r,
		frameW:   int32(opts.FrameW),
		frameH:   int32(opts.FrameH),
	}

	if err := v.initGL(); err != nil {
		v.Close()
		return nil, err
	}
	v.initUI()

	return v, nil
}

func (v *Viewer) initGL() error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	v.window, err = glfw.CreateWindow(int(v.frameW), int(v.frameH), "ray-trace", nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	v.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Setup texture for frame data
	gl.GenTextures(1, &v.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, v.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, v.frameW, v.frameH, 0, gl.BGRA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &v.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, v.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	v.window.SetKeyCallback(v.onKeyEvent)

	return nil
}

func (v *Viewer) initUI() {
	// Setup ortho projection for UI bits
	gl.Disable(gl.DEPTH_TEST)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(v.frameW), float64(v.frameH), 0, -1, 1)
	gl.Viewport(0, 0, v.frameW, v.frameH)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	v.renderTimeSeries = makeStackedSeries(len(v.renderer.Stats().Tracers), int(v.frameW))
}

// Display frames until the window is closed. The first frame is the depth
// image rendered by the accelerated backend if it is available or by the
// scalar backend otherwise.
func (v *Viewer) Run() error {
	initial := renderer.Operation{Backend: renderer.Accelerated, Mode: tracer.ProjectDepth}
	if !v.renderer.Supports(initial) {
		initial.Backend = renderer.Scalar
	}
	if err := v.present(initial); err != nil {
		return fmt.Errorf("%w: %v", ErrNoFrame, err)
	}

	for !v.window.ShouldClose() {
		glfw.WaitEventsTimeout(eventTimeout)

		if v.requested != nil {
			op := *v.requested
			v.requested = nil
			if err := v.present(op); err != nil {
				v.logger.Errorf("could not render %s; keeping %s on screen: %v", op, v.current, err)
			}
		}

		v.draw()
	}
	return nil
}

// Render op and upload the frame to the texture. The texture is left
// untouched if rendering fails.
func (v *Viewer) present(op renderer.Operation) error {
	if !v.renderer.Supports(op) {
		return fmt.Errorf("%w: %s", renderer.ErrBackendUnavailable, op)
	}

	frame, err := v.renderer.Render(op)
	if err != nil {
		return err
	}

	gl.BindTexture(gl.TEXTURE_2D, v.fbTexture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Pitch/tracer.BytesPerPixel))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, v.frameW, v.frameH, gl.BGRA, gl.UNSIGNED_BYTE, unsafe.Pointer(&frame.Pixels[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	v.current = op
	for seriesIndex, stat := range v.renderer.Stats().Tracers {
		var ms float32
		if stat.Backend == op.Backend {
			ms = float32(stat.RenderTime.Nanoseconds()) / 1e6
		}
		v.renderTimeSeries.Append(seriesIndex, ms)
	}
	v.window.SetTitle(fmt.Sprintf("ray-trace: %s", op))

	return nil
}

func (v *Viewer) draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// Copy texture data to framebuffer. Frame rows are stored top to
	// bottom so the blit flips the Y axis.
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
	gl.BlitFramebuffer(0, 0, v.frameW, v.frameH, 0, v.frameH, v.frameW, 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	if v.showUI {
		v.renderTimeSeries.Render(uint32(v.frameH)-stackedSeriesHeight, stackedSeriesHeight)
	}

	v.window.SwapBuffers()
}

func (v *Viewer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		v.window.SetShouldClose(true)
	case glfw.KeyTab:
		v.showUI = !v.showUI
		if v.showUI {
			v.renderTimeSeries.Clear()
		}
	case glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4:
		op := renderer.Operations()[key-glfw.Key1]
		v.requested = &op
	}
}

// Destroy the window. The renderer is owned by the caller.
func (v *Viewer) Close() {
	if v.window != nil {
		gl.DeleteFramebuffers(1, &v.texFbo)
		gl.DeleteTextures(1, &v.fbTexture)
		v.window.Destroy()
		v.window = nil
	}
	glfw.Terminate()
}
