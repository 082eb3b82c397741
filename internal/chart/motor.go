package chart

import (
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/motorcurve/internal/curve"
)

const (
	OutputFile = "comparativa_configuraciones_motor.png"

	// Upper y bound leaves headroom above the 730 curve (~253 rpm).
	yMax = 260

	xTickStep = 0.5
	yTickStep = 50

	annotationX = 4.8
)

// MotorComparison lays out the voltage-vs-RPM comparison chart.
func MotorComparison(cmp *curve.Comparison) *Figure {
	fig := &Figure{
		Title:  "Comparativa de Configuraciones de Motor vs. Modelo Teórico",
		XLabel: "Voltaje de Entrada (V)",
		YLabel: "Velocidad Angular (RPM)",
		XMin:   curve.VoltageMin,
		XMax:   curve.VoltageMax,
		YMin:   0,
		YMax:   yMax,

		XTickStep: xTickStep,
		YTickStep: yTickStep,

		Width:  DefaultWidth,
		Height: DefaultHeight,
		DPI:    DefaultDPI,
		Grid:   true,
	}

	for _, s := range cmp.All() {
		fig.Lines = append(fig.Lines, Line{
			Label:  s.Label,
			X:      s.X,
			Y:      s.Y,
			Color:  s.Color,
			Dashed: s.Dashed,
			Width:  vg.Points(2),
		})
	}

	if s, err := cmp.Lookup("416"); err == nil {
		_, y := s.Last()
		fig.Annotations = append(fig.Annotations, Annotation{
			Text:   "Mayor discrepancia\n(Error ~36%)",
			Anchor: Point{X: annotationX, Y: y},
			Label:  Point{X: 3.5, Y: 120},
			Color:  curve.ColorRed,
			Shrink: DefaultShrink,
		})
	}
	if s, err := cmp.Lookup("624"); err == nil {
		_, y := s.Last()
		fig.Annotations = append(fig.Annotations, Annotation{
			Text:   "Mejor ajuste\n(Error ~7-8%)",
			Anchor: Point{X: annotationX, Y: y},
			Label:  Point{X: 3.5, Y: 180},
			Color:  curve.ColorBlue,
			Shrink: DefaultShrink,
		})
	}

	return fig
}
