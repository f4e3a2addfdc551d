package cmd

import (
	"bytes"
	"fmt"

	"github.com/lanyuliuyun/ray-trace/tracer/opencl/info"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List available opencl devices.
func ListDevices(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	platforms, err := info.GetPlatformInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("\nSystem provides %d opencl platform(s):\n\n", len(platforms)))
	for pIdx, platformInfo := range platforms {
		buf.WriteString(fmt.Sprintf("[Platform %02d]\n  Name    %s\n  Vendor  %s\n  Version %s\n  Profile %s\n\n", pIdx, platformInfo.Name, platformInfo.Vendor, platformInfo.Version, platformInfo.Profile))
		if len(platformInfo.Devices) == 0 {
			continue
		}

		table := tablewriter.NewWriter(&buf)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"#", "Device", "Type", "Version", "Compute units", "Clock", "Speed"})
		for dIdx, d := range platformInfo.Devices {
			table.Append([]string{
				fmt.Sprintf("%02d", dIdx),
				d.Name,
				d.Type.String(),
				d.Version,
				fmt.Sprintf("%d", d.ComputeUnits),
				fmt.Sprintf("%d MHz", d.ClockSpeed),
				fmt.Sprintf("%d GFlops", d.Speed),
			})
		}
		table.Render()
		buf.WriteString("\n")
	}

	logger.Notice(buf.String())
	return nil
}
