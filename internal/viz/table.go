package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/motorcurve/internal/curve"
)

// EndpointRow is one line of the endpoint table.
type EndpointRow struct {
	Name      string
	Label     string
	Ratio     string
	Factor    float64
	RPM       float64
	Deviation float64
}

// Endpoints evaluates each series at the top of the voltage range.
func Endpoints(cmp *curve.Comparison) []EndpointRow {
	rows := make([]EndpointRow, 0, len(cmp.Configurations)+1)
	for _, s := range cmp.All() {
		_, y := s.Last()
		ratio := "1 : 1"
		if c, err := curve.ConfigurationByID(s.Name); err == nil {
			ratio = c.GearRatio()
		}
		rows = append(rows, EndpointRow{
			Name:      s.Name,
			Label:     s.Label,
			Ratio:     ratio,
			Factor:    s.Factor,
			RPM:       y,
			Deviation: s.DeviationPercent(cmp.Theoretical),
		})
	}
	return rows
}

func EndpointTable(cmp *curve.Comparison) string {
	rows := Endpoints(cmp)
	series := cmp.All()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers("SERIES", "RATIO", "FACTOR", "RPM @ 5 V", "DEVIATION").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 0 && row >= 0 && row < len(series) {
				return style.Foreground(LipglossColor(series[row].Color))
			}
			return style
		})

	for _, r := range rows {
		t.Row(
			r.Label,
			r.Ratio,
			fmt.Sprintf("x%.3f", r.Factor),
			fmt.Sprintf("%.1f", r.RPM),
			fmt.Sprintf("%+.1f%%", r.Deviation),
		)
	}

	return t.String()
}
