package tracer

import (
	"fmt"
	"strings"
)

// The render modes supported by all tracers.
type Mode uint8

const (
	// A red/green gradient that only depends on the pixel coordinates.
	Gradient Mode = iota
	// A depth-shaded sphere over a checkerboard background.
	ProjectDepth
	//
	numModes
)

// Implements Stringer.
func (m Mode) String() string {
	switch m {
	case Gradient:
		return "gradient"
	case ProjectDepth:
		return "depth"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Parse a render mode name.
func ParseMode(name string) (Mode, error) {
	for m := Mode(0); m < numModes; m++ {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("tracer: unknown render mode %q", name)
}

// Get all supported render modes.
func Modes() []Mode {
	modes := make([]Mode, 0, numModes)
	for m := Mode(0); m < numModes; m++ {
		modes = append(modes, m)
	}
	return modes
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Render a color gradient into the frame.
	RenderGradient(*Frame) error

	// Render the scene depth into the frame.
	RenderProjectDepth(*Frame) error

	// Shutdown and cleanup tracer.
	Close()
}

// Render a frame using the tracer implementation for the given mode.
func Render(tr Tracer, mode Mode, frame *Frame) error {
	if err := frame.Validate(); err != nil {
		return err
	}

	switch mode {
	case Gradient:
		return tr.RenderGradient(frame)
	case ProjectDepth:
		return tr.RenderProjectDepth(frame)
	}
	return fmt.Errorf("tracer (%s): %w: %s", tr.Id(), ErrUnsupportedMode, mode)
}
