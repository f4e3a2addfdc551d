package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	Backend Backend

	// Number of rendered and failed frames.
	Frames   uint32
	Failures uint32

	// Render time for the last successful frame.
	RenderTime time.Duration
}

type FrameStats struct {
	// The operation used for the last frame.
	Operation Operation

	// Frame dims.
	FrameW int
	FrameH int

	// Individual tracer stats.
	Tracers []TracerStat

	// Total render time for the last frame.
	RenderTime time.Duration
}
