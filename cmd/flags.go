package cmd

import "github.com/urfave/cli"

// Flags shared by all commands that render frames.
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Value: 640,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 480,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "row-align",
		Value: 0,
		Usage: "pad frame rows to a multiple of this many bytes",
	},
	cli.StringFlag{
		Name:  "backend",
		Value: "opencl",
		Usage: "render backend (scalar, opencl)",
	},
	cli.StringFlag{
		Name:  "mode",
		Value: "depth",
		Usage: "render mode (gradient, depth)",
	},
	cli.StringFlag{
		Name:  "program, p",
		Value: "",
		Usage: "path or URL of the opencl program; defaults to the bundled program",
	},
	cli.StringFlag{
		Name:  "device-type",
		Value: "gpu",
		Usage: "opencl device types to consider (cpu, gpu, all)",
	},
	cli.StringSliceFlag{
		Name:  "blacklist, b",
		Usage: "blacklist opencl device whose names contain this value",
	},
}

// Flags accepted by every command.
var GlobalFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "v",
		Usage: "enable verbose logging",
	},
	cli.BoolFlag{
		Name:  "vv",
		Usage: "enable even more verbose logging",
	},
	cli.StringFlag{
		Name:  "log-level",
		Usage: "set log level (debug, info, notice, warning, error)",
	},
}
