package interactive

import (
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/lanyuliuyun/ray-trace/types"
)

// Colors assigned to series in order.
var seriesColors = []types.Vec3{
	{0.2, 0.6, 1.0},
	{1.0, 0.5, 0.1},
	{0.3, 0.9, 0.3},
}

// A fixed-length history of values per series drawn as stacked columns.
type stackedSeries struct {
	series [][]float32
	colors []types.Vec3
}

func makeStackedSeries(numSeries, histCount int) *stackedSeries {
	s := &stackedSeries{
		series: make([][]float32, numSeries),
		colors: make([]types.Vec3, numSeries),
	}

	for sIndex := 0; sIndex < numSeries; sIndex++ {
		s.series[sIndex] = make([]float32, histCount)
		s.colors[sIndex] = seriesColors[sIndex%len(seriesColors)]
	}

	return s
}

// Clear series
func (s *stackedSeries) Clear() {
	for sIndex := range s.series {
		s.series[sIndex] = make([]float32, len(s.series[sIndex]))
	}
}

// Shift series values and append new value at the end.
func (s *stackedSeries) Append(seriesIndex int, val float32) {
	s.series[seriesIndex] = append(s.series[seriesIndex][1:], val)
}

// Draw one column per history entry. Columns are scaled so the largest
// total fills rHeight.
func (s *stackedSeries) Render(rY, rHeight uint32) {
	if len(s.series) == 0 {
		return
	}

	var maxSum float32
	for x := 0; x < len(s.series[0]); x++ {
		var sum float32
		for seriesIndex := range s.series {
			sum += s.series[seriesIndex][x]
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	if maxSum == 0 {
		return
	}
	scale := float32(rHeight) / maxSum

	gl.LineWidth(1.0)
	gl.Begin(gl.LINES)
	for x := 0; x < len(s.series[0]); x++ {
		y := float32(rY + rHeight)
		for seriesIndex := range s.series {
			sH := s.series[seriesIndex][x] * scale
			gl.Color3fv(&s.colors[seriesIndex][0])
			gl.Vertex2f(float32(x), y)
			gl.Vertex2f(float32(x), y-sH)
			y -= sH
		}
	}
	gl.End()
	gl.Color3f(1, 1, 1)
}
