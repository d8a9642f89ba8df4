// Package storage keeps headless render runs on disk.
//
// Each run lives in its own directory:
//
//	<base>/<run-id>/metadata.json
//	<base>/<run-id>/strips.csv
//	<base>/<run-id>/frame_0000.png ...
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/ambient/internal/ambient"
)

var ErrRunClosed = errors.New("storage: run already closed")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string    `json:"id"`
	Theme     string    `json:"theme"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	FPS       int       `json:"fps"`
	Profile   string    `json:"profile"`
	Strips    int       `json:"strips"`
	Frames    int       `json:"frames"`
	Cursor    bool      `json:"cursor"`
	Elapsed   float64   `json:"elapsed_seconds"`
}

// Run is an open render run. Frames are written as they arrive and the
// metadata is written on Close.
type Run struct {
	dir    string
	meta   RunMetadata
	closed bool
}

// Begin creates a run directory and writes the initial strip layout.
func (s *Store) Begin(meta RunMetadata, strips []ambient.Strip) (*Run, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%s", meta.Theme, uuid.NewString()[:8])
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Strips = len(strips)
	meta.Frames = 0

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := writeStrips(filepath.Join(dir, "strips.csv"), strips); err != nil {
		return nil, err
	}
	return &Run{dir: dir, meta: meta}, nil
}

func (r *Run) ID() string { return r.meta.ID }

func (r *Run) Dir() string { return r.dir }

// AddFrame writes the next frame PNG.
func (r *Run) AddFrame(img image.Image) error {
	if r.closed {
		return ErrRunClosed
	}
	f, err := os.Create(filepath.Join(r.dir, frameName(r.meta.Frames)))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode frame %d: %w", r.meta.Frames, err)
	}
	r.meta.Frames++
	return nil
}

// Close writes metadata.json. elapsed is the wall time spent rendering.
func (r *Run) Close(elapsed time.Duration) (RunMetadata, error) {
	if r.closed {
		return r.meta, ErrRunClosed
	}
	r.closed = true
	r.meta.Elapsed = elapsed.Seconds()

	f, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return r.meta, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return r.meta, enc.Encode(r.meta)
}

func frameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}

func writeStrips(path string, strips []ambient.Strip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "w", "phase", "speed"}); err != nil {
		return err
	}
	for _, s := range strips {
		row := []string{
			strconv.FormatFloat(s.X, 'f', 6, 64),
			strconv.FormatFloat(s.W, 'f', 6, 64),
			strconv.FormatFloat(s.Phase, 'f', 6, 64),
			strconv.FormatFloat(s.Speed, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every run with readable metadata, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

func (s *Store) LoadStrips(runID string) ([]ambient.Strip, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "strips.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []ambient.Strip{}, nil
	}

	strips := make([]ambient.Strip, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("strips.csv line %d: expected 4 fields, got %d", i+2, len(rec))
		}
		var vals [4]float64
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("strips.csv line %d: %w", i+2, err)
			}
			vals[j] = v
		}
		strips = append(strips, ambient.Strip{X: vals[0], W: vals[1], Phase: vals[2], Speed: vals[3]})
	}
	return strips, nil
}

// FramePath returns the path of frame i of a run.
func (s *Store) FramePath(runID string, i int) string {
	return filepath.Join(s.baseDir, runID, frameName(i))
}

func (s *Store) LoadFrame(runID string, i int) (image.Image, error) {
	f, err := os.Open(s.FramePath(runID, i))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
