package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	gridColor   = color.Gray{Y: 200}
	lineDashes  = []vg.Length{vg.Points(6), vg.Points(4)}
	gridDashes  = []vg.Length{vg.Points(3), vg.Points(3)}
	legendInset = vg.Points(8)
)

// Plot builds a gonum plot from the figure. Axis bounds are applied after the
// series so they are not widened by the data.
func (f *Figure) Plot() (*plot.Plot, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = f.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(10)
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	if f.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = gridColor
		g.Vertical.Dashes = gridDashes
		g.Horizontal.Color = gridColor
		g.Horizontal.Dashes = gridDashes
		p.Add(g)
	}

	for _, l := range f.Lines {
		pts := make(plotter.XYs, len(l.X))
		for i := range l.X {
			pts[i].X = l.X[i]
			pts[i].Y = l.Y[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: line %q: %w", l.Label, err)
		}
		if l.Color != nil {
			line.LineStyle.Color = l.Color
		}
		if l.Width > 0 {
			line.LineStyle.Width = l.Width
		}
		if l.Dashed {
			line.LineStyle.Dashes = lineDashes
		}
		p.Add(line)
		p.Legend.Add(l.Label, line)
	}

	for _, a := range f.Annotations {
		p.Add(annotation{a})
	}

	p.X.Min, p.X.Max = f.XMin, f.XMax
	p.Y.Min, p.Y.Max = f.YMin, f.YMax
	if f.XTickStep > 0 {
		p.X.Tick.Marker = constantTicks(f.XMin, f.XMax, f.XTickStep, "%.1f")
	}
	if f.YTickStep > 0 {
		p.Y.Tick.Marker = constantTicks(f.YMin, f.YMax, f.YTickStep, "%g")
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = legendInset
	p.Legend.YOffs = -legendInset
	p.Legend.TextStyle.Font.Size = vg.Points(12)

	return p, nil
}

// constantTicks labels every multiple of step within [min, max]. The grid is
// drawn at these ticks as well.
func constantTicks(min, max, step float64, format string) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	first := math.Ceil(min/step - 1e-9)
	for i := first; i*step <= max+1e-9; i++ {
		v := i * step
		if v == 0 {
			v = 0 // no "-0"
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(format, v)})
	}
	return ticks
}
