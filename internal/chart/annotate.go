package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	arrowHeadLength = vg.Points(12)
	arrowHeadWidth  = vg.Points(5)
	arrowShaftWidth = vg.Points(2)
	annotationFont  = vg.Points(11)
)

// annotation implements plot.Plotter. The text's lower-left corner sits on
// the label point and the arrow leaves from the edge of the text box closest
// to the anchor.
type annotation struct {
	Annotation
}

func (a annotation) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	at := vg.Point{X: trX(a.Label.X), Y: trY(a.Label.Y)}
	to := vg.Point{X: trX(a.Anchor.X), Y: trY(a.Anchor.Y)}

	clr := a.Color
	if clr == nil {
		clr = color.Black
	}

	sty := annotationStyle(plt)
	c.FillText(sty, at, a.Text)

	drawArrow(c, arrowStart(textBox(sty, at, a.Text), to), to, a.Shrink, clr)
}

func annotationStyle(plt *plot.Plot) text.Style {
	sty := plt.X.Label.TextStyle
	sty.Color = color.Black
	sty.Font.Size = annotationFont
	sty.Rotation = 0
	sty.XAlign = text.XLeft
	sty.YAlign = text.YBottom
	return sty
}

// textBox is the area covered by txt drawn left/bottom aligned at p.
func textBox(sty text.Style, p vg.Point, txt string) vg.Rectangle {
	return vg.Rectangle{
		Min: p,
		Max: vg.Point{X: p.X + sty.Width(txt), Y: p.Y + sty.Height(txt)},
	}
}

// arrowStart picks, among the corners and edge midpoints of box, the one
// closest to the arrow tip.
func arrowStart(box vg.Rectangle, to vg.Point) vg.Point {
	xs := []vg.Length{box.Min.X, (box.Min.X + box.Max.X) / 2, box.Max.X}
	ys := []vg.Length{box.Min.Y, (box.Min.Y + box.Max.Y) / 2, box.Max.Y}

	best := box.Min
	bestDist := math.Inf(1)
	for _, x := range xs {
		for _, y := range ys {
			if x == xs[1] && y == ys[1] {
				continue
			}
			if d := math.Hypot(float64(to.X-x), float64(to.Y-y)); d < bestDist {
				best, bestDist = vg.Point{X: x, Y: y}, d
			}
		}
	}
	return best
}

func drawArrow(c draw.Canvas, from, to vg.Point, shrink float64, clr color.Color) {
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	start := vg.Point{X: from.X + vg.Length(dx*shrink), Y: from.Y + vg.Length(dy*shrink)}
	tip := vg.Point{X: to.X - vg.Length(dx*shrink), Y: to.Y - vg.Length(dy*shrink)}

	head := float64(arrowHeadLength)
	if trimmed := length * (1 - 2*shrink); head > trimmed {
		head = trimmed
	}
	base := vg.Point{X: tip.X - vg.Length(ux*head), Y: tip.Y - vg.Length(uy*head)}
	nx, ny := -uy*float64(arrowHeadWidth), ux*float64(arrowHeadWidth)

	c.StrokeLine2(draw.LineStyle{Color: clr, Width: arrowShaftWidth}, start.X, start.Y, base.X, base.Y)
	c.FillPolygon(clr, []vg.Point{
		tip,
		{X: base.X + vg.Length(nx), Y: base.Y + vg.Length(ny)},
		{X: base.X - vg.Length(nx), Y: base.Y - vg.Length(ny)},
	})
}
