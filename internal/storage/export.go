package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/motorcurve/internal/curve"
	"github.com/san-kum/motorcurve/internal/sim"
)

// WriteCurvesCSV writes one row per voltage sample with a column per series.
func WriteCurvesCSV(w io.Writer, cmp *curve.Comparison) error {
	series := cmp.All()

	cw := csv.NewWriter(w)
	header := []string{"voltage"}
	for _, s := range series {
		if s.Name == curve.TheoreticalName {
			header = append(header, s.Name)
		} else {
			header = append(header, "config_"+s.Name)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, v := range cmp.Domain {
		row := []string{strconv.FormatFloat(v, 'f', 6, 64)}
		for _, s := range series {
			row = append(row, strconv.FormatFloat(s.Y[i], 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCurvesCSV writes the sampled curves to path.
func SaveCurvesCSV(path string, cmp *curve.Comparison) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteCurvesCSV(w, cmp)
	})
}

type ExportData struct {
	Run      RunMetadata   `json:"run"`
	Steps    int           `json:"steps"`
	Times    []float64     `json:"times"`
	States   []sim.State   `json:"states"`
	Controls []sim.Control `json:"controls"`
}

// ExportJSON writes a run and its full trajectory as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Run:      meta,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		States:   result.States,
		Controls: result.Controls,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SaveExportJSON writes the ExportJSON document to path.
func SaveExportJSON(path string, meta RunMetadata, result *sim.Result) error {
	return writeFile(path, func(w io.Writer) error {
		return ExportJSON(w, meta, result)
	})
}
