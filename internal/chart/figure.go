package chart

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot/vg"
)

var ErrEmptyFigure = errors.New("chart: figure has no lines")

const (
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 7 * vg.Inch
	DefaultDPI    = 100
	DefaultShrink = 0.05
)

type Point struct {
	X, Y float64
}

type Line struct {
	Label  string
	X, Y   []float64
	Color  color.Color
	Dashed bool
	Width  vg.Length
}

// Annotation is a text label tied to a data point by an arrow. Shrink is the
// fraction of the arrow trimmed at each end.
type Annotation struct {
	Text   string
	Anchor Point
	Label  Point
	Color  color.Color
	Shrink float64
}

type Figure struct {
	Title  string
	XLabel string
	YLabel string

	XMin, XMax float64
	YMin, YMax float64

	// Tick steps in data units. Zero keeps gonum's default ticker.
	XTickStep float64
	YTickStep float64

	Width  vg.Length
	Height vg.Length
	DPI    int
	Grid   bool

	Lines       []Line
	Annotations []Annotation
}

func (f *Figure) Validate() error {
	if len(f.Lines) == 0 {
		return ErrEmptyFigure
	}
	for _, l := range f.Lines {
		if len(l.X) != len(l.Y) {
			return fmt.Errorf("chart: line %q has %d x values and %d y values", l.Label, len(l.X), len(l.Y))
		}
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("chart: invalid page size %vx%v", f.Width, f.Height)
	}
	if f.DPI <= 0 {
		return fmt.Errorf("chart: invalid dpi %d", f.DPI)
	}
	return nil
}
