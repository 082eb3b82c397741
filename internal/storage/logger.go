package storage

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/motorcurve/internal/motor"
	"github.com/san-kum/motorcurve/internal/sim"
)

const DefaultLogInterval = 2.0

var logHeader = []string{"time_s", "rpm", "temp_c", "volts", "humidity_pct"}

type LogRow struct {
	Time     float64
	RPM      float64
	Temp     float64
	Volts    float64
	Humidity float64
}

// DataLogger samples the pump loop every Interval seconds of simulated time.
// It implements sim.Observer.
type DataLogger struct {
	Interval float64

	rows    []LogRow
	lastLog float64
}

func NewDataLogger(interval float64) *DataLogger {
	if interval <= 0 {
		interval = DefaultLogInterval
	}
	return &DataLogger{Interval: interval}
}

func (l *DataLogger) OnStep(x sim.State, u sim.Control, t float64) {
	if len(l.rows) > 0 && t-l.lastLog < l.Interval-1e-9 {
		return
	}
	row := LogRow{Time: t}
	if len(x) > motor.Temp {
		row.RPM, row.Temp = x[motor.RPM], x[motor.Temp]
	}
	if len(u) > motor.Volts {
		row.Volts = u[motor.Volts]
	}
	if len(u) > motor.Humidity {
		row.Humidity = u[motor.Humidity]
	}
	l.rows = append(l.rows, row)
	l.lastLog = t
}

func (l *DataLogger) Rows() []LogRow {
	return l.rows
}

func (l *DataLogger) Reset() {
	l.rows = nil
	l.lastLog = 0
}

func (l *DataLogger) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(logHeader); err != nil {
		return err
	}
	for _, r := range l.rows {
		rec := []string{
			strconv.FormatFloat(r.Time, 'f', 1, 64),
			strconv.FormatFloat(r.RPM, 'f', 2, 64),
			strconv.FormatFloat(r.Temp, 'f', 2, 64),
			strconv.FormatFloat(r.Volts, 'f', 2, 64),
			strconv.FormatFloat(r.Humidity, 'f', 0, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the log as CSV to path.
func (l *DataLogger) Save(path string) error {
	return writeFile(path, l.WriteCSV)
}
