package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/motorcurve/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	logFile      = "log.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Humidity   float64            `json:"humidity"`
	Protection bool               `json:"protection"`
	Demo       bool               `json:"demo"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json, states.csv and, when a
// logger is given, log.csv. ID, Timestamp and Metrics of meta are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result, logger *DataLogger) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", meta.Model, now.Unix(), uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", fmt.Errorf("write states: %w", err)
	}
	if logger != nil {
		if err := logger.Save(filepath.Join(runDir, logFile)); err != nil {
			return "", fmt.Errorf("write log: %w", err)
		}
	}

	return runID, nil
}

// writeFile creates path and hands it to write. Errors from closing the file
// are reported, since buffered data may only reach the disk then.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeStates(path string, result *sim.Result) error {
	return writeFile(path, func(w io.Writer) error {
		return encodeStates(w, result)
	})
}

// encodeStates writes one row per state: time, x0..xn, then u0..um. The
// final state has no control and leaves the u columns empty.
func encodeStates(out io.Writer, result *sim.Result) error {
	if len(result.States) == 0 {
		return nil
	}

	w := csv.NewWriter(out)

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}

	numControls := 0
	if len(result.Controls) > 0 {
		numControls = len(result.Controls[0])
		for i := 0; i < numControls; i++ {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}

	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}

		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}

		if i < len(result.Controls) {
			for _, val := range result.Controls[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		} else {
			for j := 0; j < numControls; j++ {
				row = append(row, "")
			}
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LogPath(runID string) string {
	return filepath.Join(s.baseDir, runID, logFile)
}

// LoadStates reads states.csv back into a result. Times, States and
// Controls are filled in; Controls is one shorter than States.
func (s *Store) LoadStates(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return decodeStates(file)
}

func decodeStates(in io.Reader) (*sim.Result, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{Metrics: make(map[string]float64)}
	if len(records) < 2 {
		return result, nil
	}

	var xCols, uCols []int
	for j, name := range records[0] {
		switch {
		case strings.HasPrefix(name, "x"):
			xCols = append(xCols, j)
		case strings.HasPrefix(name, "u"):
			uCols = append(uCols, j)
		}
	}

	parse := func(record []string, cols []int) ([]float64, error) {
		out := make([]float64, 0, len(cols))
		for _, j := range cols {
			if j >= len(record) || record[j] == "" {
				return nil, nil
			}
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("states row %d: %w", i+1, err)
		}
		x, err := parse(record, xCols)
		if err != nil || x == nil {
			return nil, fmt.Errorf("states row %d: incomplete state", i+1)
		}
		u, err := parse(record, uCols)
		if err != nil {
			return nil, fmt.Errorf("states row %d: %w", i+1, err)
		}

		result.Times = append(result.Times, t)
		result.States = append(result.States, sim.State(x))
		if len(uCols) > 0 && u != nil {
			result.Controls = append(result.Controls, sim.Control(u))
		}
	}
	result.StepsTaken = len(result.States) - 1

	return result, nil
}
