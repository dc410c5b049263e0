package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Data map[string][]float64 `json:"data"`
}

// ExportJSON writes a run's metadata and series as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Data: series})
}

func (s *Store) ExportJSONFile(runID, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return s.ExportJSON(runID, w)
	})
}
