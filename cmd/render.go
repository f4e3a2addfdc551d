package cmd

import (
	"bytes"
	"fmt"

	"github.com/lanyuliuyun/ray-trace/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := rendererOptions(ctx)
	if err != nil {
		return err
	}

	r, err := newRenderer(opts, opts.Backend == renderer.Accelerated)
	if err != nil {
		return err
	}
	defer r.Close()

	op := renderer.Operation{Backend: opts.Backend, Mode: opts.Mode}
	if !r.Supports(op) {
		logger.Warningf("%s is not available; rendering with the %s backend", op, renderer.Scalar)
		op.Backend = renderer.Scalar
	}

	frame, err := r.Render(op)
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	if err = renderer.SaveFrame(frame, imgFile); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Backend", "Frames", "Failures", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			stat.Backend.String(),
			fmt.Sprintf("%d", stat.Frames),
			fmt.Sprintf("%d", stat.Failures),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%dx%d", stats.FrameW, stats.FrameH), stats.Operation.String(), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
