package scene

import "github.com/lanyuliuyun/ray-trace/types"

// The image plane spans {0 <= x < frameW, 0 <= y < frameH, z = 0}. The
// default scene is tuned for a 640x480 frame: the camera sits in front of the
// plane center and the sphere sits behind it.
var (
	DefaultEye    = types.XYZ(320, 240, 180)
	DefaultFront  = types.XYZ(0, 0, -1)
	DefaultFOV    float32 = 80
	DefaultCenter = types.XYZ(320, 240, -120)
	DefaultRadius float32 = 210
)

// A scene containing a single sphere viewed through a pinhole camera.
type Scene struct {
	Camera *Camera
	Sphere *Sphere
}

// Create a scene from a camera and a sphere.
func NewScene(camera *Camera, sphere *Sphere) *Scene {
	return &Scene{
		Camera: camera,
		Sphere: sphere,
	}
}

// Create the default scene. Both tracer backends must render this scene
// identically.
func Default() *Scene {
	return NewScene(
		NewCamera(DefaultEye, DefaultFront, DefaultFOV, DefaultFOV, DefaultFOV, DefaultFOV),
		NewSphere(DefaultCenter, DefaultRadius),
	)
}

// Get the device-side representation of the scene camera.
func (s *Scene) CameraData() CameraData {
	return NewCameraData(s.Camera)
}

// Get the device-side representation of the scene sphere.
func (s *Scene) SphereData() SphereData {
	return NewSphereData(s.Sphere)
}
