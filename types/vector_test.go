package types

import (
	"math"
	"testing"
)

const floatCmpEpsilon = 1e-5

func approxEqual(v1, v2 Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(v1[i]-v2[i])) > floatCmpEpsilon {
			return false
		}
	}
	return true
}

func TestVec3Arithmetic(t *testing.T) {
	type spec struct {
		name string
		got  Vec3
		exp  Vec3
	}

	a := XYZ(1, 2, 3)
	b := XYZ(4, -5, 6)

	specs := []spec{
		{"add", a.Add(b), XYZ(5, -3, 9)},
		{"sub", a.Sub(b), XYZ(-3, 7, -3)},
		{"mul", a.Mul(2), XYZ(2, 4, 6)},
		{"div", b.Div(2), XYZ(2, -2.5, 3)},
		{"cross", a.Cross(b), XYZ(27, 6, -13)},
		{"cross x/y", XYZ(1, 0, 0).Cross(XYZ(0, 1, 0)), XYZ(0, 0, 1)},
	}

	for index, s := range specs {
		if !approxEqual(s.got, s.exp) {
			t.Fatalf("[spec %d] expected %s to return %v; got %v", index, s.name, s.exp, s.got)
		}
	}
}

func TestVec3Products(t *testing.T) {
	a := XYZ(1, 2, 3)
	b := XYZ(4, -5, 6)

	if dot := a.Dot(b); dot != 12 {
		t.Fatalf("expected dot product to be 12; got %f", dot)
	}

	if sqrLen := a.SqrLen(); sqrLen != 14 {
		t.Fatalf("expected squared length to be 14; got %f", sqrLen)
	}

	if l := XYZ(3, 4, 0).Len(); l != 5 {
		t.Fatalf("expected length to be 5; got %f", l)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := XYZ(0, 3, -4).Normalize()
	if !approxEqual(n, XYZ(0, 0.6, -0.8)) {
		t.Fatalf("expected normalized vector to be (0, 0.6, -0.8); got %v", n)
	}

	if l := n.Len(); math.Abs(float64(l-1)) > floatCmpEpsilon {
		t.Fatalf("expected normalized vector length to be 1; got %f", l)
	}

	// Normalizing a zero vector is a caller error and must not be masked.
	z := Vec3{}.Normalize()
	if !math.IsNaN(float64(z[0])) {
		t.Fatalf("expected normalizing a zero vector to produce NaN components; got %v", z)
	}

	if !(Vec3{}).IsZero() || XYZ(0, 0, 1).IsZero() {
		t.Fatal("IsZero returned an unexpected result")
	}
}
