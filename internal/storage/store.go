package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/atmos/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "population.csv"
)

var seriesHeader = []string{"time", "frame", "population", "snowflakes", "raindrops", "rockets", "sparks", "detonations"}

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
	ID        string             `json:"id"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Frames    int                `json:"frames"`
	Preset    string             `json:"preset,omitempty"`
	Scenario  string             `json:"scenario,omitempty"`
	Elapsed   float64            `json:"elapsed_sec"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series is the per-frame population table of a stored run.
type Series struct {
	Times       []float64
	Frames      []uint64
	Population  []float64
	Snowflakes  []float64
	Raindrops   []float64
	Rockets     []float64
	Sparks      []float64
	Detonations []float64
}

func (s *Series) Len() int { return len(s.Times) }

// Save writes meta and the result's samples under a new run directory and
// returns its id. ID, Timestamp, Frames, Elapsed and Metrics are filled in
// from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.Mode, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(result.Samples)
	meta.Elapsed = result.Elapsed.Seconds()
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(seriesHeader); err != nil {
		return "", err
	}
	for i, st := range result.Samples {
		t := 0.0
		if i < len(result.Times) {
			t = result.Times[i]
		}
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatUint(st.Frame, 10),
			strconv.Itoa(st.Population),
			strconv.Itoa(st.Snowflakes),
			strconv.Itoa(st.Raindrops),
			strconv.Itoa(st.Rockets),
			strconv.Itoa(st.Sparks),
			strconv.FormatUint(st.Detonations, 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// newRunDir creates <mode>_<unix> and appends a counter when two runs land
// in the same second.
func (s *Store) newRunDir(mode string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", mode, now.Unix())
	runID := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return runID, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, i)
	}
}

// List returns stored runs, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for _, record := range records[1:] {
		if len(record) < len(seriesHeader) {
			continue
		}
		vals := make([]float64, len(seriesHeader))
		ok := true
		for j := range seriesHeader {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		series.Times = append(series.Times, vals[0])
		series.Frames = append(series.Frames, uint64(vals[1]))
		series.Population = append(series.Population, vals[2])
		series.Snowflakes = append(series.Snowflakes, vals[3])
		series.Raindrops = append(series.Raindrops, vals[4])
		series.Rockets = append(series.Rockets, vals[5])
		series.Sparks = append(series.Sparks, vals[6])
		series.Detonations = append(series.Detonations, vals[7])
	}

	return series, nil
}

// SeriesPath is the CSV file backing a run.
func (s *Store) SeriesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, seriesFile)
}
