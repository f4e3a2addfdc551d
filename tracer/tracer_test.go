package tracer

import (
	"errors"
	"testing"
)

type mockTracer struct {
	gradientCalls int
	depthCalls    int
}

func (tr *mockTracer) Id() string { return "mock" }
func (tr *mockTracer) Close()     {}

func (tr *mockTracer) RenderGradient(*Frame) error {
	tr.gradientCalls++
	return nil
}

func (tr *mockTracer) RenderProjectDepth(*Frame) error {
	tr.depthCalls++
	return nil
}

func TestNewFrame(t *testing.T) {
	type spec struct {
		w, h, align int
		expPitch    int
	}
	specs := []spec{
		{640, 480, 0, 2560},
		{640, 480, 64, 2560},
		{10, 3, 16, 48},
		{10, 3, 1, 40},
	}

	for index, s := range specs {
		f := NewFrame(s.w, s.h, s.align)
		if f.Pitch != s.expPitch {
			t.Fatalf("[spec %d] expected pitch to be %d; got %d", index, s.expPitch, f.Pitch)
		}
		if len(f.Pixels) != s.expPitch*s.h {
			t.Fatalf("[spec %d] expected buffer size to be %d; got %d", index, s.expPitch*s.h, len(f.Pixels))
		}
		if err := f.Validate(); err != nil {
			t.Fatalf("[spec %d] unexpected validation error: %v", index, err)
		}
	}
}

func TestFrameValidate(t *testing.T) {
	specs := []*Frame{
		nil,
		{Width: 0, Height: 10, Pitch: 0},
		{Pixels: make([]byte, 100), Width: 10, Height: 2, Pitch: 20},
		{Pixels: make([]byte, 79), Width: 10, Height: 2, Pitch: 40},
	}

	for index, f := range specs {
		if err := f.Validate(); !errors.Is(err, ErrInvalidFrame) {
			t.Fatalf("[spec %d] expected ErrInvalidFrame; got %v", index, err)
		}
	}

	// The last row does not need to be padded
	f := &Frame{Pixels: make([]byte, 88), Width: 10, Height: 2, Pitch: 48}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestFramePixelLayout(t *testing.T) {
	f := NewFrame(4, 4, 32)
	f.SetPixel(1, 2, PixelColor{B: 1, G: 2, R: 3, A: 4})

	o := 2*32 + 1*4
	exp := []byte{1, 2, 3, 4}
	for i, b := range exp {
		if f.Pixels[o+i] != b {
			t.Fatalf("expected byte %d of pixel to be %d; got %d", i, b, f.Pixels[o+i])
		}
	}

	if c := f.Pixel(1, 2); c != (PixelColor{1, 2, 3, 4}) {
		t.Fatalf("expected to read back the pixel color; got %+v", c)
	}

	clone := f.Clone()
	clone.SetPixel(1, 2, White)
	if f.Pixel(1, 2) == White {
		t.Fatal("expected clone to use a separate pixel buffer")
	}
}

func TestRenderDispatch(t *testing.T) {
	tr := &mockTracer{}
	f := NewFrame(2, 2, 0)

	if err := Render(tr, Gradient, f); err != nil {
		t.Fatal(err)
	}
	if err := Render(tr, ProjectDepth, f); err != nil {
		t.Fatal(err)
	}
	if tr.gradientCalls != 1 || tr.depthCalls != 1 {
		t.Fatalf("expected one call per mode; got gradient %d, depth %d", tr.gradientCalls, tr.depthCalls)
	}

	if err := Render(tr, Mode(42), f); !errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("expected ErrUnsupportedMode; got %v", err)
	}

	if err := Render(tr, Gradient, &Frame{}); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame; got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		if err != nil || parsed != m {
			t.Fatalf("expected to parse %q as %d; got %d (%v)", m.String(), m, parsed, err)
		}
	}

	if _, err := ParseMode("Depth"); err != nil {
		t.Fatalf("expected mode names to be case insensitive; got %v", err)
	}

	if _, err := ParseMode("normals"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
