package scene

import "github.com/lanyuliuyun/ray-trace/types"

// The structures in this file are uploaded to the device byte-for-byte and
// must match the layouts declared in CL/render.cl. Each Vec3 is followed by
// a padding float so that it lines up with an opencl float4.

// Device-side camera layout (64 bytes).
type CameraData struct {
	Eye    types.Vec3
	eyePad float32

	Front    types.Vec3
	frontPad float32

	LeftFOV   float32
	RightFOV  float32
	TopFOV    float32
	BottomFOV float32

	LeftAngleTan   float32
	RightAngleTan  float32
	TopAngleTan    float32
	BottomAngleTan float32
}

// Pack a camera for uploading to the device.
func NewCameraData(c *Camera) CameraData {
	return CameraData{
		Eye:            c.Eye,
		Front:          c.Front,
		LeftFOV:        c.LeftFOV,
		RightFOV:       c.RightFOV,
		TopFOV:         c.TopFOV,
		BottomFOV:      c.BottomFOV,
		LeftAngleTan:   c.LeftAngleTan,
		RightAngleTan:  c.RightAngleTan,
		TopAngleTan:    c.TopAngleTan,
		BottomAngleTan: c.BottomAngleTan,
	}
}

// Unpack the camera. The tangent bounds are copied as-is.
func (cd CameraData) Camera() *Camera {
	return &Camera{
		Eye:            cd.Eye,
		Front:          cd.Front,
		LeftFOV:        cd.LeftFOV,
		RightFOV:       cd.RightFOV,
		TopFOV:         cd.TopFOV,
		BottomFOV:      cd.BottomFOV,
		LeftAngleTan:   cd.LeftAngleTan,
		RightAngleTan:  cd.RightAngleTan,
		TopAngleTan:    cd.TopAngleTan,
		BottomAngleTan: cd.BottomAngleTan,
	}
}

// Device-side sphere layout (32 bytes).
type SphereData struct {
	Center    types.Vec3
	centerPad float32

	Radius    float32
	SqrRadius float32
	_         [2]float32
}

// Pack a sphere for uploading to the device.
func NewSphereData(s *Sphere) SphereData {
	return SphereData{
		Center:    s.center,
		Radius:    s.radius,
		SqrRadius: s.sqrRadius,
	}
}

// Unpack the sphere.
func (sd SphereData) Sphere() *Sphere {
	return &Sphere{
		center:    sd.Center,
		radius:    sd.Radius,
		sqrRadius: sd.SqrRadius,
	}
}
