package chart

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/motorcurve/internal/curve"
)

func TestMotorComparisonLayout(t *testing.T) {
	cmp := curve.Compute()
	fig := MotorComparison(cmp)

	if len(fig.Lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(fig.Lines))
	}
	if fig.XMin != 0 || fig.XMax != 5 || fig.YMin != 0 || fig.YMax != 260 {
		t.Errorf("unexpected bounds x=[%v, %v] y=[%v, %v]", fig.XMin, fig.XMax, fig.YMin, fig.YMax)
	}
	if !fig.Grid {
		t.Error("grid disabled")
	}

	theo := fig.Lines[0]
	if theo.Label != "Modelo Teórico (Ideal)" || !theo.Dashed || theo.Color != curve.ColorBlack {
		t.Errorf("unexpected theoretical line: %q dashed=%v color=%v", theo.Label, theo.Dashed, theo.Color)
	}

	labels := []string{
		"Motor Config 416 (Real)",
		"Motor Config 520 (Real)",
		"Motor Config 624 (Real)",
		"Motor Config 730 (Real)",
	}
	for i, want := range labels {
		l := fig.Lines[i+1]
		if l.Label != want {
			t.Errorf("line %d: got label %q, want %q", i+1, l.Label, want)
		}
		if l.Dashed {
			t.Errorf("line %q should be solid", l.Label)
		}
		if len(l.Y) != curve.Samples {
			t.Errorf("line %q has %d samples", l.Label, len(l.Y))
		}
	}

	if len(fig.Annotations) != 2 {
		t.Fatalf("expected 2 annotations, got %d", len(fig.Annotations))
	}
	s416, _ := cmp.Lookup("416")
	_, y416 := s416.Last()
	a := fig.Annotations[0]
	if a.Anchor != (Point{X: 4.8, Y: y416}) || a.Label != (Point{X: 3.5, Y: 120}) || a.Color != curve.ColorRed {
		t.Errorf("unexpected 416 annotation: %+v", a)
	}

	s624, _ := cmp.Lookup("624")
	_, y624 := s624.Last()
	a = fig.Annotations[1]
	if a.Anchor != (Point{X: 4.8, Y: y624}) || a.Label != (Point{X: 3.5, Y: 180}) {
		t.Errorf("unexpected 624 annotation: %+v", a)
	}
}

func TestPlotKeepsFixedBounds(t *testing.T) {
	p, err := MotorComparison(curve.Compute()).Plot()
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if p.X.Min != 0 || p.X.Max != 5 || p.Y.Min != 0 || p.Y.Max != 260 {
		t.Errorf("bounds widened: x=[%v, %v] y=[%v, %v]", p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
	}
	if p.Y.Label.Text != "Velocidad Angular (RPM)" {
		t.Errorf("unexpected y label %q", p.Y.Label.Text)
	}
}

func labels(ticks []plot.Tick) []string {
	var out []string
	for _, tk := range ticks {
		if tk.Label != "" {
			out = append(out, tk.Label)
		}
	}
	return out
}

func TestPlotTicks(t *testing.T) {
	p, err := MotorComparison(curve.Compute()).Plot()
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}

	got := strings.Join(labels(p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max)), " ")
	if want := "0 50 100 150 200 250"; got != want {
		t.Errorf("y ticks = %q, want %q", got, want)
	}

	got = strings.Join(labels(p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)), " ")
	if want := "0.0 0.5 1.0 1.5 2.0 2.5 3.0 3.5 4.0 4.5 5.0"; got != want {
		t.Errorf("x ticks = %q, want %q", got, want)
	}
}

func TestPlotDefaultTicker(t *testing.T) {
	fig := &Figure{
		Width: DefaultWidth, Height: DefaultHeight, DPI: DefaultDPI,
		Lines: []Line{{X: []float64{0, 1}, Y: []float64{0, 1}}},
	}
	p, err := fig.Plot()
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if _, ok := p.Y.Tick.Marker.(plot.ConstantTicks); ok {
		t.Error("expected the default ticker without a tick step")
	}
}

func TestArrowStart(t *testing.T) {
	box := vg.Rectangle{Min: vg.Point{X: 100, Y: 100}, Max: vg.Point{X: 200, Y: 140}}

	tests := []struct {
		name string
		to   vg.Point
		want vg.Point
	}{
		{"right and below", vg.Point{X: 400, Y: 20}, vg.Point{X: 200, Y: 100}},
		{"straight right", vg.Point{X: 400, Y: 120}, vg.Point{X: 200, Y: 120}},
		{"above", vg.Point{X: 150, Y: 300}, vg.Point{X: 150, Y: 140}},
		{"left", vg.Point{X: 0, Y: 125}, vg.Point{X: 100, Y: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arrowStart(box, tt.to); got != tt.want {
				t.Errorf("arrowStart = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnnotationTextBox(t *testing.T) {
	sty := annotationStyle(plot.New())
	at := vg.Point{X: 50, Y: 80}
	box := textBox(sty, at, "Mayor discrepancia\n(Error ~36%)")

	if box.Min != at {
		t.Errorf("text should start at its label point, box min %v", box.Min)
	}
	if box.Max.X <= at.X || box.Max.Y <= at.Y {
		t.Errorf("text box should extend right and up from the label point, got %v", box)
	}

	two := sty.Height("a\nb")
	one := sty.Height("a")
	if two <= one {
		t.Errorf("two-line height %v not taller than one line %v", two, one)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		fig  Figure
	}{
		{"no lines", Figure{Width: DefaultWidth, Height: DefaultHeight, DPI: DefaultDPI}},
		{"mismatched", Figure{Width: DefaultWidth, Height: DefaultHeight, DPI: DefaultDPI,
			Lines: []Line{{X: []float64{1, 2}, Y: []float64{1}}}}},
		{"zero size", Figure{DPI: DefaultDPI, Lines: []Line{{X: []float64{1}, Y: []float64{1}}}}},
		{"zero dpi", Figure{Width: DefaultWidth, Height: DefaultHeight,
			Lines: []Line{{X: []float64{1}, Y: []float64{1}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fig.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	empty := Figure{Width: DefaultWidth, Height: DefaultHeight, DPI: DefaultDPI}
	if err := empty.Validate(); !errors.Is(err, ErrEmptyFigure) {
		t.Errorf("expected ErrEmptyFigure, got %v", err)
	}
}

func TestSaveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), OutputFile)

	if err := Save(MotorComparison(curve.Compute()), path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty image")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 1200 || img.Bounds().Dy() != 700 {
		t.Errorf("expected 1200x700, got %v", img.Bounds())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), OutputFile)
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Save(MotorComparison(curve.Compute()), path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("stale file not replaced: %v", err)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", OutputFile)
	err := Save(MotorComparison(curve.Compute()), path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestSaveFailureKeepsPreviousImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), OutputFile)
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Save(&Figure{Width: DefaultWidth, Height: DefaultHeight, DPI: DefaultDPI}, path)
	if !errors.Is(err, ErrEmptyFigure) {
		t.Fatalf("expected ErrEmptyFigure, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous" {
		t.Errorf("previous image overwritten: %q", data)
	}
}

func TestWriteToSVG(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteTo(MotorComparison(curve.Compute()), &buf, "svg")
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("output is not svg")
	}
}

func TestWriteToUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteTo(MotorComparison(curve.Compute()), &buf, "bmp"); err == nil {
		t.Error("expected error for bmp")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"chart":         "png",
		"chart.PNG":     "png",
		"out/chart.svg": "svg",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
