package scene

import (
	"testing"
	"unsafe"
)

func TestDeviceLayoutSizes(t *testing.T) {
	var cd CameraData
	if size := unsafe.Sizeof(cd); size != 64 {
		t.Fatalf("expected camera layout to be 64 bytes; got %d", size)
	}
	if off := unsafe.Offsetof(cd.Front); off != 16 {
		t.Fatalf("expected camera front at offset 16; got %d", off)
	}
	if off := unsafe.Offsetof(cd.LeftFOV); off != 32 {
		t.Fatalf("expected camera fov block at offset 32; got %d", off)
	}
	if off := unsafe.Offsetof(cd.LeftAngleTan); off != 48 {
		t.Fatalf("expected camera tangent block at offset 48; got %d", off)
	}

	var sd SphereData
	if size := unsafe.Sizeof(sd); size != 32 {
		t.Fatalf("expected sphere layout to be 32 bytes; got %d", size)
	}
	if off := unsafe.Offsetof(sd.Radius); off != 16 {
		t.Fatalf("expected sphere radius at offset 16; got %d", off)
	}
}

func TestDeviceLayoutRoundTrip(t *testing.T) {
	sc := Default()

	cam := sc.CameraData().Camera()
	if *cam != *sc.Camera {
		t.Fatalf("expected unpacked camera to match the uploaded value;\n got %v\nexp %v", cam, sc.Camera)
	}

	sphere := sc.SphereData().Sphere()
	if *sphere != *sc.Sphere {
		t.Fatalf("expected unpacked sphere to match the uploaded value; got %v", sphere)
	}
}
