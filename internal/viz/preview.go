package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motorcurve/internal/curve"
)

var seriesColors = map[string]asciigraph.AnsiColor{
	curve.TheoreticalName: asciigraph.Default,
	"416":                 asciigraph.Red,
	"520":                 asciigraph.Green,
	"624":                 asciigraph.Blue,
	"730":                 asciigraph.Purple,
}

// CurvePreview plots every series of cmp on one terminal graph.
func CurvePreview(cmp *curve.Comparison, width, height int) string {
	series := cmp.All()

	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	legends := make([]string, 0, len(series))
	for _, s := range series {
		data = append(data, s.Y)
		c, ok := seriesColors[s.Name]
		if !ok {
			c = asciigraph.Default
		}
		colors = append(colors, c)
		legends = append(legends, s.Label)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("RPM vs Voltage (0-5 V)"),
	)
}
