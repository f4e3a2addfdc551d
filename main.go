package main

import (
	"fmt"
	"os"

	"github.com/lanyuliuyun/ray-trace/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ray-trace"
	app.Usage = "ray cast a sphere on the cpu or an opencl device"
	app.Version = "0.0.1"
	app.Flags = cmd.GlobalFlags
	app.Commands = []cli.Command{
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a single frame using the selected backend and mode and write it to an
image file. The image format (png, bmp or tiff) is selected by the output
file extension. If no suitable opencl device is available the frame is
rendered by the scalar backend.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, cmd.RenderFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "interactive",
			Usage: "display frames in a window",
			Description: `
Open a window and display the depth image. Use keys 1 to 4 to select the
gradient (scalar), gradient (opencl), depth (scalar) and depth (opencl)
images. Tab toggles the render time overlay and Esc quits.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderInteractive,
		},
		{
			Name:  "compare",
			Usage: "compare the output of the scalar and opencl backends",
			Flags: append([]cli.Flag{
				cli.Float64Flag{
					Name:  "max-mismatch",
					Value: 0.001,
					Usage: "max fraction of pixels allowed to differ beyond the tolerance",
				},
			}, cmd.RenderFlags...),
			Action: cmd.CompareBackends,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
