package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ExportData struct {
	Run         RunMetadata `json:"run"`
	Steps       int         `json:"steps"`
	Times       []float64   `json:"times"`
	Population  []float64   `json:"population"`
	Snowflakes  []float64   `json:"snowflakes"`
	Raindrops   []float64   `json:"raindrops"`
	Rockets     []float64   `json:"rockets"`
	Sparks      []float64   `json:"sparks"`
	Detonations []float64   `json:"detonations"`
}

// ExportJSON writes a stored run, metadata and series, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return fmt.Errorf("load series %s: %w", runID, err)
	}

	data := ExportData{
		Run:         *meta,
		Steps:       series.Len(),
		Times:       series.Times,
		Population:  series.Population,
		Snowflakes:  series.Snowflakes,
		Raindrops:   series.Raindrops,
		Rockets:     series.Rockets,
		Sparks:      series.Sparks,
		Detonations: series.Detonations,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies the stored population CSV to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(s.SeriesPath(runID))
	if err != nil {
		return fmt.Errorf("open series %s: %w", runID, err)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
