package tracer

import "fmt"

const BytesPerPixel = 4

// A pixel as stored in a frame. The field order matches the BGRA8 byte
// layout of the frame buffer.
type PixelColor struct {
	B uint8
	G uint8
	R uint8
	A uint8
}

var (
	Black = PixelColor{0, 0, 0, 255}
	White = PixelColor{255, 255, 255, 255}
)

// A caller-owned BGRA8 render target. Rows are stored top to bottom and
// may be padded; Pitch is the distance in bytes between two rows.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
	Pitch  int
}

// Allocate a frame. If rowAlign is greater than 1, the pitch is padded to
// the next multiple of rowAlign bytes.
func NewFrame(width, height, rowAlign int) *Frame {
	pitch := width * BytesPerPixel
	if rowAlign > 1 && pitch%rowAlign != 0 {
		pitch += rowAlign - pitch%rowAlign
	}

	return &Frame{
		Pixels: make([]byte, pitch*height),
		Width:  width,
		Height: height,
		Pitch:  pitch,
	}
}

// Check that the frame dimensions are consistent with its pixel buffer.
func (f *Frame) Validate() error {
	if f == nil || f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions", ErrInvalidFrame)
	}
	if f.Pitch < f.Width*BytesPerPixel {
		return fmt.Errorf("%w: pitch %d is smaller than row size %d", ErrInvalidFrame, f.Pitch, f.Width*BytesPerPixel)
	}
	if need := f.Pitch*(f.Height-1) + f.Width*BytesPerPixel; len(f.Pixels) < need {
		return fmt.Errorf("%w: buffer holds %d bytes; need %d", ErrInvalidFrame, len(f.Pixels), need)
	}
	return nil
}

// Get the byte offset of pixel (x, y).
func (f *Frame) Offset(x, y int) int {
	return y*f.Pitch + x*BytesPerPixel
}

// Get the pixel at (x, y).
func (f *Frame) Pixel(x, y int) PixelColor {
	o := f.Offset(x, y)
	return PixelColor{f.Pixels[o], f.Pixels[o+1], f.Pixels[o+2], f.Pixels[o+3]}
}

// Set the pixel at (x, y).
func (f *Frame) SetPixel(x, y int, c PixelColor) {
	o := f.Offset(x, y)
	f.Pixels[o] = c.B
	f.Pixels[o+1] = c.G
	f.Pixels[o+2] = c.R
	f.Pixels[o+3] = c.A
}

// Create a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	clone := *f
	clone.Pixels = make([]byte, len(f.Pixels))
	copy(clone.Pixels, f.Pixels)
	return &clone
}
