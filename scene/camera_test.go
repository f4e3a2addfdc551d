package scene

import (
	"math"
	"testing"

	"github.com/lanyuliuyun/ray-trace/types"
)

const floatCmpEpsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) <= floatCmpEpsilon
}

func TestCameraTangentBounds(t *testing.T) {
	c := NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), 45, 45, 30, 60)

	if !approxEqual(c.LeftAngleTan, -1) || !approxEqual(c.RightAngleTan, 1) {
		t.Fatalf("expected horizontal bounds to be [-1, 1]; got [%f, %f]", c.LeftAngleTan, c.RightAngleTan)
	}

	expTop := float32(math.Tan(math.Pi / 6))
	expBottom := -float32(math.Tan(math.Pi / 3))
	if !approxEqual(c.TopAngleTan, expTop) || !approxEqual(c.BottomAngleTan, expBottom) {
		t.Fatalf("expected vertical bounds to be [%f, %f]; got [%f, %f]", expBottom, expTop, c.BottomAngleTan, c.TopAngleTan)
	}

	// Changing the FOV must refresh all tangents
	c.SetFOV(80, 80, 80, 80)
	exp := float32(math.Tan(80.0 / 180.0 * math.Pi))
	if !approxEqual(c.RightAngleTan, exp) || !approxEqual(c.TopAngleTan, exp) ||
		!approxEqual(c.LeftAngleTan, -exp) || !approxEqual(c.BottomAngleTan, -exp) {
		t.Fatalf("expected all bounds to have magnitude %f after SetFOV; got %v", exp, c)
	}
	if c.LeftFOV != 80 || c.BottomFOV != 80 {
		t.Fatalf("expected SetFOV to store the FOV angles; got left %f bottom %f", c.LeftFOV, c.BottomFOV)
	}
}

func TestCameraGenerateRay(t *testing.T) {
	c := NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), 45, 45, 45, 45)

	type spec struct {
		dest     Point
		expValid bool
		expDir   Direction
	}
	specs := []spec{
		{types.XYZ(0, 0, -1), true, types.XYZ(0, 0, -1)},
		{types.XYZ(0, 3, -4), true, types.XYZ(0, 0.6, -0.8)},
		{types.XYZ(-0.5, -0.5, -10), true, types.XYZ(-0.5, -0.5, -10).Normalize()},
		// behind or level with the camera
		{types.XYZ(0, 0, 1), false, DirectionNone},
		{types.XYZ(1, 1, 0), false, DirectionNone},
		// outside the frustum
		{types.XYZ(2, 0, -1), false, DirectionNone},
		{types.XYZ(-2, 0, -1), false, DirectionNone},
		{types.XYZ(0, 2, -1), false, DirectionNone},
		{types.XYZ(0, -2, -1), false, DirectionNone},
	}

	for index, s := range specs {
		ray := c.GenerateRay(s.dest)
		if ray.Valid() != s.expValid {
			t.Fatalf("[spec %d] expected ray validity to be %t; got %t", index, s.expValid, ray.Valid())
		}

		if !s.expValid {
			if ray.Direction != DirectionNone {
				t.Fatalf("[spec %d] expected invalid ray to use the none direction; got %v", index, ray.Direction)
			}
			continue
		}

		if ray.Origin != c.Eye {
			t.Fatalf("[spec %d] expected ray origin to be the camera eye; got %v", index, ray.Origin)
		}

		for i := 0; i < 3; i++ {
			if !approxEqual(ray.Direction[i], s.expDir[i]) {
				t.Fatalf("[spec %d] expected ray direction %v; got %v", index, s.expDir, ray.Direction)
			}
		}
	}
}

func TestDefaultSceneCoversFrame(t *testing.T) {
	sc := Default()

	// With 80 degree bounds every point of a 640x480 image plane is visible.
	for _, dest := range []Point{
		types.XYZ(0, 0, 0),
		types.XYZ(639, 0, 0),
		types.XYZ(0, 480, 0),
		types.XYZ(639, 480, 0),
	} {
		if !sc.Camera.GenerateRay(dest).Valid() {
			t.Fatalf("expected ray towards %v to be valid", dest)
		}
	}
}
