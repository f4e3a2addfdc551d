package scene

import (
	"fmt"

	"github.com/chewxy/math32"
)

type Sphere struct {
	center    Point
	radius    float32
	sqrRadius float32
}

// Create a new sphere.
func NewSphere(center Point, radius float32) *Sphere {
	return &Sphere{
		center:    center,
		radius:    radius,
		sqrRadius: radius * radius,
	}
}

// Get sphere center.
func (s *Sphere) Center() Point {
	return s.center
}

// Get sphere radius.
func (s *Sphere) Radius() float32 {
	return s.radius
}

// Get the squared sphere radius.
func (s *Sphere) SqrRadius() float32 {
	return s.sqrRadius
}

// Intersect the sphere with a ray and return the intersection closest to
// the ray origin.
//
// Only the near root is evaluated; rays whose direction points away from the
// sphere center are rejected without solving for the far root.
func (s *Sphere) Intersect(ray Ray) IntersectResult {
	delta := ray.Origin.Sub(s.center)

	DdotV := ray.Direction.Dot(delta)
	if DdotV > 0 {
		return NoHit
	}

	a0 := delta.SqrLen() - s.sqrRadius
	discr := DdotV*DdotV - a0
	if discr < 0 {
		return NoHit
	}

	dist := -DdotV - math32.Sqrt(discr)
	pos := ray.PointAt(dist)
	return IntersectResult{
		Hit:      true,
		Distance: dist,
		Position: pos,
		Normal:   pos.Sub(s.center).Normalize(),
	}
}

func (s *Sphere) String() string {
	return fmt.Sprintf(
		"Sphere:\nCenter : (%3.3f, %3.3f, %3.3f)\nRadius : %3.3f",
		s.center[0], s.center[1], s.center[2],
		s.radius,
	)
}
