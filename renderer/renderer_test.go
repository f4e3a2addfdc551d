package renderer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device/devicetest"
)

func TestParseBackend(t *testing.T) {
	specs := []struct {
		name   string
		exp    Backend
		expErr bool
	}{
		{"scalar", Scalar, false},
		{"SOFT", Scalar, false},
		{"opencl", Accelerated, false},
		{"cl", Accelerated, false},
		{"cuda", 0, true},
	}

	for specIndex, spec := range specs {
		b, err := ParseBackend(spec.name)
		if spec.expErr {
			if err == nil {
				t.Fatalf("[spec %d] expected an error", specIndex)
			}
			continue
		}
		if err != nil || b != spec.exp {
			t.Fatalf("[spec %d] expected backend %s; got %s (err: %v)", specIndex, spec.exp, b, err)
		}
	}
}

func TestOperationOrder(t *testing.T) {
	exp := []Operation{
		{Scalar, tracer.Gradient},
		{Accelerated, tracer.Gradient},
		{Scalar, tracer.ProjectDepth},
		{Accelerated, tracer.ProjectDepth},
	}
	if got := Operations(); !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected operations %v; got %v", exp, got)
	}

	if got := exp[3].String(); got != "depth (opencl)" {
		t.Fatalf("expected operation name %q; got %q", "depth (opencl)", got)
	}
}

func TestInvalidFrameSize(t *testing.T) {
	_, err := NewDefault(scene.Default(), nil, Options{FrameW: 0, FrameH: 480})
	if !errors.Is(err, ErrInvalidFrameSize) {
		t.Fatalf("expected ErrInvalidFrameSize; got %v", err)
	}
}

func TestScalarOnlyRenderer(t *testing.T) {
	r, err := NewDefault(scene.Default(), nil, Options{FrameW: 640, FrameH: 480, Backend: Accelerated})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Supports(Operation{Accelerated, tracer.Gradient}) {
		t.Fatal("expected accelerated operations to be unsupported without a driver")
	}
	if !r.Supports(Operation{Scalar, tracer.ProjectDepth}) {
		t.Fatal("expected scalar depth rendering to be supported")
	}

	_, err = r.Render(Operation{Accelerated, tracer.Gradient})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable; got %v", err)
	}

	frame, err := r.Render(Operation{Scalar, tracer.ProjectDepth})
	if err != nil {
		t.Fatal(err)
	}
	exp := tracer.PixelColor{B: 140, G: 140, R: 140, A: 255}
	if got := frame.Pixel(320, 240); got != exp {
		t.Fatalf("expected center pixel %v; got %v", exp, got)
	}

	stats := r.Stats()
	if stats.Operation != (Operation{Scalar, tracer.ProjectDepth}) || len(stats.Tracers) != 1 || stats.Tracers[0].Frames != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestFallbackWhenNoDeviceIsSuitable(t *testing.T) {
	drv := devicetest.NewDriver(
		devicetest.GPU("Fake GPU (no RGBA8)", device.ImageFormat{Order: device.ChannelOrderBGRA, Type: device.ChannelTypeUnormInt8}),
	)
	drv.AddRenderKernels()

	r, err := NewDefault(scene.Default(), drv, Options{FrameW: 32, FrameH: 32})
	if err != nil {
		t.Fatalf("expected renderer to fall back to the scalar backend; got %v", err)
	}
	defer r.Close()

	if r.Supports(Operation{Accelerated, tracer.ProjectDepth}) {
		t.Fatal("expected accelerated backend to be disabled")
	}
	if drv.Live() != 0 {
		t.Fatalf("expected rejected device resources to be released; %d objects alive", drv.Live())
	}
}

func TestSessionErrorsAreNotMasked(t *testing.T) {
	drv := newTestDriver()
	drv.Fail(devicetest.OpBuild, errors.New("build program failure"))

	_, err := NewDefault(scene.Default(), drv, Options{FrameW: 32, FrameH: 32})
	var buildErr *device.ProgramBuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected a ProgramBuildError; got %v", err)
	}
	if drv.Live() != 0 {
		t.Fatalf("expected all resources to be released; %d objects alive", drv.Live())
	}
}

func TestBackendParity(t *testing.T) {
	drv := newTestDriver()
	r, err := NewDefault(scene.Default(), drv, Options{FrameW: 100, FrameH: 75, RowAlign: 64})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for _, mode := range tracer.Modes() {
		if !r.Supports(Operation{Accelerated, mode}) {
			t.Fatalf("expected accelerated %s rendering to be supported", mode)
		}

		exp, err := r.Render(Operation{Scalar, mode})
		if err != nil {
			t.Fatal(err)
		}
		got, err := r.Render(Operation{Accelerated, mode})
		if err != nil {
			t.Fatal(err)
		}

		report, err := Compare(mode, exp, got)
		if err != nil {
			t.Fatal(err)
		}
		if !report.Ok() || report.MaxDelta != 0 {
			t.Fatalf("[%s] expected identical frames; got %+v", mode, report)
		}
	}

	for _, stat := range r.Stats().Tracers {
		if stat.Frames != 2 || stat.Failures != 0 {
			t.Fatalf("expected tracer %q to report 2 frames and no failures; got %+v", stat.Id, stat)
		}
	}
}

func TestFailedFrameKeepsBackendUsable(t *testing.T) {
	drv := newTestDriver()
	r, err := NewDefault(scene.Default(), drv, Options{FrameW: 32, FrameH: 32})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	op := Operation{Accelerated, tracer.ProjectDepth}
	drv.Fail(devicetest.OpEnqueue, errors.New("out of resources"))
	if frame, err := r.Render(op); err == nil || frame != nil {
		t.Fatalf("expected render to fail without a frame; got %v, %v", frame, err)
	}

	delete(drv.Failures, devicetest.OpEnqueue)
	if _, err = r.Render(op); err != nil {
		t.Fatalf("expected render to succeed after the failure is cleared; got %v", err)
	}

	stats := r.Stats()
	stat := stats.Tracers[len(stats.Tracers)-1]
	if stat.Backend != Accelerated || stat.Frames != 1 || stat.Failures != 1 {
		t.Fatalf("expected 1 frame and 1 failure for the accelerated tracer; got %+v", stat)
	}
}

func TestCloseReleasesSession(t *testing.T) {
	drv := newTestDriver()
	r, err := NewDefault(scene.Default(), drv, Options{FrameW: 32, FrameH: 32})
	if err != nil {
		t.Fatal(err)
	}

	r.Close()
	if drv.Live() != 0 || drv.DoubleReleases() != 0 {
		t.Fatalf("expected no leaked or double released objects; got %d live, %d double releases", drv.Live(), drv.DoubleReleases())
	}
	if r.Supports(Operation{Scalar, tracer.Gradient}) {
		t.Fatal("expected closed renderer to reject all operations")
	}
}

func newTestDriver() *devicetest.Driver {
	drv := devicetest.NewDriver(devicetest.GPU("Fake GPU", device.RGBA8))
	drv.AddRenderKernels()
	return drv
}
