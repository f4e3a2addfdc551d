//go:build opencl

package driver_test

import (
	"testing"

	"github.com/lanyuliuyun/ray-trace/renderer"
	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/driver"
)

func TestSelectDevice(t *testing.T) {
	dev, err := device.SelectDevice(driver.New(), device.Query{Type: device.AllDevices, Format: device.RGBA8})
	if err != nil {
		t.Skipf("no opencl device available: %v", err)
	}
	defer dev.Close()

	if dev.Name == "" {
		t.Fatal("expected selected device to report a name")
	}
	if err = dev.Init(); err != nil {
		t.Fatal(err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, err := opencl.NewSession(driver.New(), opencl.Options{FrameW: 64, FrameH: 48, DeviceType: device.AllDevices})
	if err != nil {
		t.Skipf("could not create opencl session: %v", err)
	}

	for _, mode := range tracer.Modes() {
		if !s.HasKernel(mode) {
			t.Fatalf("expected the bundled program to define the %s kernel", mode)
		}
	}

	s.Close()
	if s.State() != opencl.Disposed {
		t.Fatalf("expected session to be disposed; got %s", s.State())
	}
}

func TestBackendParity(t *testing.T) {
	specs := []struct {
		frameW, frameH, rowAlign int
	}{
		{640, 480, 0},
		{100, 75, 64},
	}

	for specIndex, spec := range specs {
		r, err := renderer.NewDefault(scene.Default(), driver.New(), renderer.Options{
			FrameW:     spec.frameW,
			FrameH:     spec.frameH,
			RowAlign:   spec.rowAlign,
			DeviceType: device.AllDevices,
		})
		if err != nil {
			t.Fatal(err)
		}

		for _, mode := range tracer.Modes() {
			accelOp := renderer.Operation{Backend: renderer.Accelerated, Mode: mode}
			if !r.Supports(accelOp) {
				r.Close()
				t.Skip("no opencl device available")
			}

			exp, err := r.Render(renderer.Operation{Backend: renderer.Scalar, Mode: mode})
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.Render(accelOp)
			if err != nil {
				t.Fatal(err)
			}

			report, err := renderer.Compare(mode, exp, got)
			if err != nil {
				t.Fatal(err)
			}

			// Rounding differences may flip hits along the silhouette
			if report.MismatchRatio() > 0.001 {
				t.Fatalf("[spec %d] %s: %d of %d pixels differ; first at (%d, %d)", specIndex, mode, report.Mismatched, spec.frameW*spec.frameH, report.FirstX, report.FirstY)
			}
		}
		r.Close()
	}
}
