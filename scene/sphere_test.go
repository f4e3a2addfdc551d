package scene

import (
	"math"
	"testing"

	"github.com/lanyuliuyun/ray-trace/types"
)

func TestSphereSqrRadius(t *testing.T) {
	s := NewSphere(types.XYZ(1, 2, 3), 4)
	if s.SqrRadius() != 16 {
		t.Fatalf("expected squared radius to be 16; got %f", s.SqrRadius())
	}
	if s.Radius() != 4 || s.Center() != types.XYZ(1, 2, 3) {
		t.Fatalf("unexpected sphere attributes: %s", s)
	}
}

func TestSphereIntersect(t *testing.T) {
	s := NewSphere(types.XYZ(0, 0, -10), 2)

	res := s.Intersect(Ray{Origin: types.XYZ(0, 0, 0), Direction: types.XYZ(0, 0, -1)})
	if !res.Hit {
		t.Fatal("expected ray to hit the sphere")
	}
	if !approxEqual(res.Distance, 8) {
		t.Fatalf("expected hit distance to be 8; got %f", res.Distance)
	}
	if res.Position != types.XYZ(0, 0, -8) {
		t.Fatalf("expected hit position to be (0, 0, -8); got %v", res.Position)
	}
	if res.Normal != types.XYZ(0, 0, 1) {
		t.Fatalf("expected hit normal to be (0, 0, 1); got %v", res.Normal)
	}

	// Off-center hit
	dir := types.XYZ(1, 0, -10).Normalize()
	res = s.Intersect(Ray{Origin: types.XYZ(0, 0, 0), Direction: dir})
	if !res.Hit {
		t.Fatal("expected off-center ray to hit the sphere")
	}
	if l := res.Position.Sub(s.Center()).Len(); math.Abs(float64(l-2)) > 1e-3 {
		t.Fatalf("expected hit position to lie on the sphere surface; distance from center is %f", l)
	}
	if l := res.Normal.Len(); math.Abs(float64(l-1)) > 1e-5 {
		t.Fatalf("expected unit normal; got length %f", l)
	}
}

func TestSphereIntersectMisses(t *testing.T) {
	s := NewSphere(types.XYZ(0, 0, -10), 2)

	specs := []Ray{
		// ray moving away from the sphere
		{Origin: types.XYZ(0, 0, 0), Direction: types.XYZ(0, 0, 1)},
		// perpendicular ray that passes the sphere
		{Origin: types.XYZ(0, 0, 0), Direction: types.XYZ(0, 1, 0)},
		// ray that passes next to the sphere
		{Origin: types.XYZ(0, 0, 0), Direction: types.XYZ(3, 0, -10).Normalize()},
	}

	for index, ray := range specs {
		res := s.Intersect(ray)
		if res != NoHit {
			t.Fatalf("[spec %d] expected no-hit result; got %+v", index, res)
		}
	}
}

func TestDefaultSceneCenterHit(t *testing.T) {
	sc := Default()

	ray := sc.Camera.GenerateRay(types.XYZ(320, 240, 0))
	res := sc.Sphere.Intersect(ray)
	if !res.Hit {
		t.Fatal("expected the center ray to hit the default sphere")
	}

	// eye->center distance is 300, radius 210
	if !approxEqual(res.Distance, 90) {
		t.Fatalf("expected center hit distance to be 90; got %f", res.Distance)
	}
}
