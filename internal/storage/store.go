package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/tightbind/internal/config"
)

const (
	DefaultDir = ".tightbind"

	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Record is what an example run leaves behind.
type Record struct {
	Figures []string
	Scalars map[string]float64
	Series  map[string][]float64
	Lines   []string
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Example   string             `json:"example"`
	Timestamp time.Time          `json:"timestamp"`
	Figures   []string           `json:"figures"`
	Scalars   map[string]float64 `json:"scalars"`
	Series    []string           `json:"series"`
	Lines     []string           `json:"lines,omitempty"`
	Config    *config.Config     `json:"config,omitempty"`
}

func (s *Store) Save(example string, cfg *config.Config, rec Record) (runID string, err error) {
	now := time.Now()
	runID = fmt.Sprintf("%s_%d", example, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	names := seriesNames(rec.Series)
	meta := RunMetadata{
		ID:        runID,
		Example:   example,
		Timestamp: now,
		Figures:   rec.Figures,
		Scalars:   rec.Scalars,
		Series:    names,
		Lines:     rec.Lines,
		Config:    cfg,
	}

	err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	err = writeFile(filepath.Join(runDir, seriesFile), func(w io.Writer) error {
		return writeSeries(w, names, rec.Series)
	})
	if err != nil {
		return "", fmt.Errorf("write series: %w", err)
	}
	return runID, nil
}

// writeFile creates path and hands it to write. A failed Close is reported
// like a failed write.
func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func seriesNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeSeries writes one column per series. Shorter columns are padded with
// empty cells.
func writeSeries(out io.Writer, names []string, series map[string][]float64) error {
	w := csv.NewWriter(out)
	if len(names) == 0 {
		w.Flush()
		return w.Error()
	}
	if err := w.Write(names); err != nil {
		return err
	}

	rows := 0
	for _, name := range names {
		rows = max(rows, len(series[name]))
	}
	for i := 0; i < rows; i++ {
		row := make([]string, len(names))
		for j, name := range names {
			if col := series[name]; i < len(col) {
				row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads the named columns of a run. Padding cells are dropped.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make(map[string][]float64)
	if len(records) == 0 {
		return series, nil
	}
	header := records[0]
	for _, name := range header {
		series[name] = []float64{}
	}
	for _, record := range records[1:] {
		for j, cell := range record {
			if j >= len(header) || cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s column %s: %w", runID, header[j], err)
			}
			series[header[j]] = append(series[header[j]], v)
		}
	}
	return series, nil
}

// ExportCSV copies the series table of a run to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return writeSeries(w, seriesNames(series), series)
}
