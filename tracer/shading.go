package tracer

const (
	// Edge length in pixels of a background checkerboard cell.
	CheckerCellSize = 40

	// Hit distance that maps to the darkest depth shade.
	DepthScale float32 = 200
)

// Get the checkerboard background color for pixel (i, j).
func CheckerColor(i, j int) PixelColor {
	if (i/CheckerCellSize-j/CheckerCellSize)&1 != 0 {
		return White
	}
	return Black
}

// Map a hit distance to a gray level. Closer hits are brighter.
func DepthShade(distance float32) uint8 {
	v := distance / DepthScale * 255
	if v > 255 {
		v = 255
	} else if v < 0 {
		v = 0
	}
	return uint8(255 - v)
}

// Get the gradient color for pixel (i, j) of a w x h frame.
func GradientColor(i, j, w, h int) PixelColor {
	return PixelColor{
		B: 0,
		G: uint8(float32(j) / float32(h) * 255),
		R: uint8(float32(i) / float32(w) * 255),
		A: 1,
	}
}
