//go:build opencl

package info

import (
	"strings"
	"testing"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
)

func TestErrorName(t *testing.T) {
	specs := []struct {
		code cl.ErrorCode
		exp  string
	}{
		{0, "SUCCESS"},
		{-11, "BUILD_PROGRAM_FAILURE"},
		{-54, "INVALID_WORK_GROUP_SIZE"},
		{-1000, "unknown error code -1000"},
	}

	for specIndex, spec := range specs {
		if got := ErrorName(spec.code); got != spec.exp {
			t.Fatalf("[spec %d] expected name %q; got %q", specIndex, spec.exp, got)
		}
	}
}

func TestEstimateSpeed(t *testing.T) {
	if got := estimateSpeed(20, 1500); got != 60 {
		t.Fatalf("expected speed estimate 60 GFlops; got %d", got)
	}
}

func TestPlatformString(t *testing.T) {
	pl := PlatformInfo{
		Version: "OpenCL 1.2",
		Name:    "Test platform",
		Devices: []DeviceInfo{
			{Name: "Test GPU", Type: device.GpuDevice, ComputeUnits: 4, ClockSpeed: 1000, Speed: 8},
		},
	}

	out := pl.String()
	for _, exp := range []string{"Name:       Test platform", "  Device 00:\n", "    Name: Test GPU", "    Type: GPU"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected platform description to contain %q; got:\n%s", exp, out)
		}
	}
}

func TestGetPlatformInfo(t *testing.T) {
	platforms, err := GetPlatformInfo()
	if err != nil {
		t.Fatal(err)
	}

	for _, pl := range platforms {
		if pl.Name == "" {
			t.Fatalf("expected platform to report a name")
		}
		for _, d := range pl.Devices {
			if d.Speed != estimateSpeed(d.ComputeUnits, d.ClockSpeed) {
				t.Fatalf("device %q: speed estimate mismatch", d.Name)
			}
		}
	}
}
