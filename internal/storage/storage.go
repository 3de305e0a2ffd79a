// Package storage persists headless run recordings: one directory per run
// holding metadata.json and a frames.csv of per-step node positions.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/pendula/internal/trace"
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Dt        float64   `json:"dt"`
	Duration  float64   `json:"duration"`
	GravityY  float64   `json:"gravity_y"`
	Masses    []float64 `json:"masses"`
	Steps     int       `json:"steps"`
}

// Recording is a headless run's sampled motion: one frame per step, one
// point per node, anchor first.
type Recording struct {
	Times  []float64
	Frames [][]trace.Point
}

func (s *Store) Save(dt, duration, gravityY float64, masses []float64, rec *Recording) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		GravityY:  gravityY,
		Masses:    masses,
		Steps:     len(rec.Frames),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(rec.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range rec.Frames[0] {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range rec.Frames {
		row := []string{strconv.FormatFloat(rec.Times[i], 'f', 6, 64)}
		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadRecording(runID string) (*Recording, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &Recording{}, nil
	}

	rec := &Recording{
		Times:  make([]float64, 0, len(records)-1),
		Frames: make([][]trace.Point, 0, len(records)-1),
	}
	for _, row := range records[1:] {
		if len(row) < 3 || len(row)%2 == 0 {
			return nil, fmt.Errorf("malformed frame row with %d fields", len(row))
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, err
		}
		frame := make([]trace.Point, 0, (len(row)-1)/2)
		for i := 1; i < len(row); i += 2 {
			x, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, err
			}
			y, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, err
			}
			frame = append(frame, trace.Point{X: x, Y: y})
		}
		rec.Times = append(rec.Times, t)
		rec.Frames = append(rec.Frames, frame)
	}

	return rec, nil
}
