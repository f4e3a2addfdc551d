package cmd

import (
	"github.com/lanyuliuyun/ray-trace/renderer"
	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/device"
	"github.com/lanyuliuyun/ray-trace/tracer/opencl/driver"
	"github.com/urfave/cli"
)

// Build renderer options from the command flags.
func rendererOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.Options{
		FrameW:             ctx.Int("width"),
		FrameH:             ctx.Int("height"),
		RowAlign:           ctx.Int("row-align"),
		ProgramPath:        ctx.String("program"),
		BlackListedDevices: ctx.StringSlice("blacklist"),
	}

	var err error
	if opts.Backend, err = renderer.ParseBackend(ctx.String("backend")); err != nil {
		return opts, err
	}
	if opts.Mode, err = tracer.ParseMode(ctx.String("mode")); err != nil {
		return opts, err
	}
	if opts.DeviceType, err = device.ParseDeviceType(ctx.String("device-type")); err != nil {
		return opts, err
	}

	return opts, nil
}

// Create a renderer. The opencl runtime is only loaded if the accelerated
// backend may be used.
func newRenderer(opts renderer.Options, needAccelerator bool) (renderer.Renderer, error) {
	var drv device.Driver
	if needAccelerator {
		drv = driver.New()
	}
	return renderer.NewDefault(scene.Default(), drv, opts)
}
