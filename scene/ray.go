package scene

import "github.com/lanyuliuyun/ray-trace/types"

// A point in world space.
type Point = types.Vec3

// A direction in world space. Directions are unit vectors by convention.
type Direction = types.Vec3

// The all-zero direction marks a ray that must not be traced.
var DirectionNone = Direction{}

// A ray that carries no meaningful direction.
var InvalidRay = Ray{Direction: DirectionNone}

type Ray struct {
	Origin    Point
	Direction Direction
}

// Returns false if the ray was flagged as invalid when generated.
func (r Ray) Valid() bool {
	return r.Direction != DirectionNone
}

// Get the point at distance t along the ray.
func (r Ray) PointAt(t float32) Point {
	return r.Origin.Add(r.Direction.Mul(t))
}

// The outcome of a ray/primitive intersection test.
type IntersectResult struct {
	Hit      bool
	Distance float32
	Position Point
	Normal   Direction
}

// The result reported when a ray misses.
var NoHit = IntersectResult{}
