package renderer

import (
	"errors"
	"testing"

	"github.com/lanyuliuyun/ray-trace/tracer"
)

func TestTolerance(t *testing.T) {
	if got := Tolerance(tracer.Gradient); got != 1 {
		t.Fatalf("expected gradient tolerance 1; got %d", got)
	}
	if got := Tolerance(tracer.ProjectDepth); got != 2 {
		t.Fatalf("expected depth tolerance 2; got %d", got)
	}
}

func TestCompare(t *testing.T) {
	exp := tracer.NewFrame(8, 4, 0)
	got := tracer.NewFrame(8, 4, 64)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			c := tracer.PixelColor{B: uint8(x * 10), G: uint8(y * 10), R: 100, A: 255}
			exp.SetPixel(x, y, c)
			got.SetPixel(x, y, c)
		}
	}
	// Row padding must be ignored
	got.Pixels[len(got.Pixels)-1] = 0xFF

	report, err := Compare(tracer.ProjectDepth, exp, got)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Ok() || report.FirstX != -1 || report.FirstY != -1 {
		t.Fatalf("expected identical frames; got %+v", report)
	}

	// Within tolerance
	c := got.Pixel(1, 1)
	c.R += 2
	got.SetPixel(1, 1, c)

	// Beyond tolerance
	c = got.Pixel(5, 2)
	c.G = 255
	got.SetPixel(5, 2, c)
	got.SetPixel(7, 3, tracer.White)

	report, err = Compare(tracer.ProjectDepth, exp, got)
	if err != nil {
		t.Fatal(err)
	}
	if report.Ok() || report.Mismatched != 2 {
		t.Fatalf("expected 2 mismatched pixels; got %d", report.Mismatched)
	}
	if report.FirstX != 5 || report.FirstY != 2 {
		t.Fatalf("expected first mismatch at (5, 2); got (%d, %d)", report.FirstX, report.FirstY)
	}
	if report.MaxDelta != 255-20 {
		t.Fatalf("expected max delta %d; got %d", 255-20, report.MaxDelta)
	}
	if ratio := report.MismatchRatio(); ratio != 2.0/32.0 {
		t.Fatalf("expected mismatch ratio %f; got %f", 2.0/32.0, ratio)
	}

	// The gradient tolerance rejects the 2 level difference
	report, _ = Compare(tracer.Gradient, exp, got)
	if report.Mismatched != 3 || report.FirstX != 1 || report.FirstY != 1 {
		t.Fatalf("expected 3 mismatched pixels starting at (1, 1); got %+v", report)
	}
}

func TestCompareSizeMismatch(t *testing.T) {
	_, err := Compare(tracer.Gradient, tracer.NewFrame(8, 4, 0), tracer.NewFrame(4, 8, 0))
	if !errors.Is(err, ErrFrameMismatch) {
		t.Fatalf("expected ErrFrameMismatch; got %v", err)
	}

	_, err = Compare(tracer.Gradient, tracer.NewFrame(8, 4, 0), &tracer.Frame{Width: 8, Height: 4, Pitch: 32})
	if !errors.Is(err, tracer.ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame; got %v", err)
	}
}
