package cmd

import (
	"github.com/lanyuliuyun/ray-trace/renderer/interactive"
	"github.com/urfave/cli"
)

// Display frames in a window; keys 1 to 4 switch between the gradient and
// depth images of each backend.
func RenderInteractive(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := rendererOptions(ctx)
	if err != nil {
		return err
	}

	r, err := newRenderer(opts, true)
	if err != nil {
		return err
	}
	defer r.Close()

	viewer, err := interactive.New(r, opts)
	if err != nil {
		return err
	}
	defer viewer.Close()

	return viewer.Run()
}
