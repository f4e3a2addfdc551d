package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/lanyuliuyun/ray-trace/tracer"
)

// The result of comparing two frames rendered with the same mode.
type ParityReport struct {
	Mode tracer.Mode

	// Frame dims.
	FrameW int
	FrameH int

	// Max per-channel difference accepted for a pixel.
	Tolerance uint8

	// Number of pixels whose difference exceeds the tolerance.
	Mismatched int

	// The largest per-channel difference seen.
	MaxDelta uint8

	// Coordinates of the first mismatched pixel in row order; -1 if all
	// pixels are within tolerance.
	FirstX int
	FirstY int
}

// Returns true if every pixel is within tolerance.
func (pr ParityReport) Ok() bool {
	return pr.Mismatched == 0
}

// Get the fraction of mismatched pixels.
func (pr ParityReport) MismatchRatio() float32 {
	return float32(pr.Mismatched) / float32(pr.FrameW*pr.FrameH)
}

// Get the accepted per-channel difference for a mode. Depth frames may
// differ by the shade levels spanned by one distance unit.
func Tolerance(mode tracer.Mode) uint8 {
	if mode == tracer.ProjectDepth {
		return uint8(math32.Ceil(255 / tracer.DepthScale))
	}
	return 1
}

// Compare two frames pixel by pixel. Row padding is ignored.
func Compare(mode tracer.Mode, expected, got *tracer.Frame) (ParityReport, error) {
	if err := expected.Validate(); err != nil {
		return ParityReport{}, err
	}
	if err := got.Validate(); err != nil {
		return ParityReport{}, err
	}
	if expected.Width != got.Width || expected.Height != got.Height {
		return ParityReport{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrFrameMismatch, expected.Width, expected.Height, got.Width, got.Height)
	}

	pr := ParityReport{
		Mode:      mode,
		FrameW:    expected.Width,
		FrameH:    expected.Height,
		Tolerance: Tolerance(mode),
		FirstX:    -1,
		FirstY:    -1,
	}

	for y := 0; y < expected.Height; y++ {
		for x := 0; x < expected.Width; x++ {
			delta := pixelDelta(expected.Pixel(x, y), got.Pixel(x, y))
			if delta > pr.MaxDelta {
				pr.MaxDelta = delta
			}
			if delta <= pr.Tolerance {
				continue
			}
			if pr.Mismatched == 0 {
				pr.FirstX, pr.FirstY = x, y
			}
			pr.Mismatched++
		}
	}

	return pr, nil
}

func pixelDelta(a, b tracer.PixelColor) uint8 {
	return maxU8(
		maxU8(absDiff(a.B, b.B), absDiff(a.G, b.G)),
		maxU8(absDiff(a.R, b.R), absDiff(a.A, b.A)),
	)
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
