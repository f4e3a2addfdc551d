package scene

import (
	"fmt"

	"github.com/chewxy/math32"
)

// A pinhole camera looking down the negative Z axis. The visible region is
// bounded by four independent field of view angles (in degrees) which are
// converted into tangent bounds so that frustum tests reduce to a pair of
// range checks.
//
// The left and bottom tangents are stored negated.
type Camera struct {
	Eye   Point
	Front Direction

	LeftFOV   float32
	RightFOV  float32
	TopFOV    float32
	BottomFOV float32

	LeftAngleTan   float32
	RightAngleTan  float32
	TopAngleTan    float32
	BottomAngleTan float32
}

// Create a new camera and calculate its frustum bounds.
func NewCamera(eye Point, front Direction, leftFOV, rightFOV, topFOV, bottomFOV float32) *Camera {
	c := &Camera{
		Eye:   eye,
		Front: front,
	}
	c.SetFOV(leftFOV, rightFOV, topFOV, bottomFOV)
	return c
}

// Update the camera field of view angles and recalculate the tangent bounds.
func (c *Camera) SetFOV(leftFOV, rightFOV, topFOV, bottomFOV float32) {
	c.LeftFOV = leftFOV
	c.RightFOV = rightFOV
	c.TopFOV = topFOV
	c.BottomFOV = bottomFOV

	c.LeftAngleTan = -fovTan(leftFOV)
	c.RightAngleTan = fovTan(rightFOV)
	c.TopAngleTan = fovTan(topFOV)
	c.BottomAngleTan = -fovTan(bottomFOV)
}

// Generate a ray from the camera eye towards dest. If dest lies outside the
// camera frustum the returned ray is invalid.
//
// The frustum test assumes that the camera front vector is parallel to the
// negative Z axis; arbitrary camera orientations are not supported.
func (c *Camera) GenerateRay(dest Point) Ray {
	delta := dest.Sub(c.Eye)

	// Target must be in front of the camera
	if delta[2] >= 0 {
		return InvalidRay
	}

	hTan := delta[0] / (-delta[2])
	vTan := delta[1] / (-delta[2])
	if hTan < c.LeftAngleTan || hTan > c.RightAngleTan ||
		vTan < c.BottomAngleTan || vTan > c.TopAngleTan {
		return InvalidRay
	}

	return Ray{
		Origin:    c.Eye,
		Direction: delta.Normalize(),
	}
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera:\nEye   : (%3.3f, %3.3f, %3.3f)\nFront : (%3.3f, %3.3f, %3.3f)\nFOV   : L %3.1f R %3.1f T %3.1f B %3.1f",
		c.Eye[0], c.Eye[1], c.Eye[2],
		c.Front[0], c.Front[1], c.Front[2],
		c.LeftFOV, c.RightFOV, c.TopFOV, c.BottomFOV,
	)
}

func fovTan(degrees float32) float32 {
	return math32.Tan((degrees / 180) * math32.Pi)
}
