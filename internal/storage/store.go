package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/coulomb/internal/field"
	"github.com/san-kum/coulomb/internal/report"
)

const (
	metadataFile  = "metadata.json"
	particlesFile = "particles.csv"
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
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Electrons    int                `json:"electrons"`
	Pairs        int64              `json:"pairs"`
	Seed         int64              `json:"seed"`
	Generator    string             `json:"generator"`
	Workers      int                `json:"workers"`
	AngleMode    string             `json:"angle_mode"`
	AccumulateNS int64              `json:"accumulate_ns"`
	TotalNS      int64              `json:"total_ns"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (s *Store) Save(opts field.Options, res *field.Result) (string, error) {
	now := time.Now()
	if err := s.Init(); err != nil {
		return "", err
	}

	base := fmt.Sprintf("n%d_%d", len(res.Surface), now.UnixNano())
	runID := base
	runDir := filepath.Join(s.baseDir, runID)
	for k := 1; ; k++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, k)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    now,
		Electrons:    len(res.Surface),
		Pairs:        res.Pairs,
		Seed:         opts.Seed,
		Generator:    opts.Generator,
		Workers:      opts.Workers,
		AngleMode:    opts.AngleMode.String(),
		AccumulateNS: res.Timings.Accumulate.Nanoseconds(),
		TotalNS:      res.Timings.Total().Nanoseconds(),
		Metrics:      res.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, particlesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := report.WriteCSV(f, report.Records(res.Surface)); err != nil {
		return "", err
	}
	return runID, f.Close()
}

// List returns stored runs, oldest first. Unreadable entries are skipped.
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
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return runs[i].ID < runs[j].ID
	})
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

func (s *Store) LoadParticles(runID string) ([]report.ParticleRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, particlesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return report.ReadCSV(f)
}

type Export struct {
	Run       RunMetadata             `json:"run"`
	Particles []report.ParticleRecord `json:"particles"`
}

// ExportJSON writes a stored run and its particles as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	particles, err := s.LoadParticles(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{Run: *meta, Particles: particles})
}

// ExportCSV copies the stored particle table to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	particles, err := s.LoadParticles(runID)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, particles)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
