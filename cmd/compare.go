package cmd

import (
	"bytes"
	"fmt"

	"github.com/lanyuliuyun/ray-trace/renderer"
	"github.com/lanyuliuyun/ray-trace/tracer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render every mode on both backends and report the differences.
func CompareBackends(ctx *cli.Context) error {
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

	maxRatio := float32(ctx.Float64("max-mismatch"))
	reports := make([]renderer.ParityReport, 0)
	for _, mode := range tracer.Modes() {
		accelOp := renderer.Operation{Backend: renderer.Accelerated, Mode: mode}
		if !r.Supports(accelOp) {
			return fmt.Errorf("%w: %s", renderer.ErrBackendUnavailable, accelOp)
		}

		expFrame, err := r.Render(renderer.Operation{Backend: renderer.Scalar, Mode: mode})
		if err != nil {
			return err
		}
		gotFrame, err := r.Render(accelOp)
		if err != nil {
			return err
		}

		report, err := renderer.Compare(mode, expFrame, gotFrame)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	displayParityReports(reports, maxRatio)

	for _, report := range reports {
		if report.MismatchRatio() > maxRatio {
			return fmt.Errorf("%s: %d pixels differ between backends", report.Mode, report.Mismatched)
		}
	}
	return nil
}

func displayParityReports(reports []renderer.ParityReport, maxRatio float32) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mode", "Size", "Tolerance", "Max delta", "Mismatched", "First mismatch", "Result"})
	for _, report := range reports {
		first, result := "-", "OK"
		if !report.Ok() {
			first = fmt.Sprintf("(%d, %d)", report.FirstX, report.FirstY)
			result = fmt.Sprintf("%02.3f %%", report.MismatchRatio()*100)
		}
		if report.MismatchRatio() > maxRatio {
			result = "FAIL " + result
		}
		table.Append([]string{
			report.Mode.String(),
			fmt.Sprintf("%dx%d", report.FrameW, report.FrameH),
			fmt.Sprintf("%d", report.Tolerance),
			fmt.Sprintf("%d", report.MaxDelta),
			fmt.Sprintf("%d", report.Mismatched),
			first,
			result,
		})
	}

	table.Render()
	logger.Noticef("backend parity\n%s", buf.String())
}
