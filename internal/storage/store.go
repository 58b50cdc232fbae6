// Package storage persists simulation runs: metadata as JSON, diagnostic
// time series as CSV, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ssghost/gocean/internal/config"
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Preset    string             `json:"preset,omitempty"`
	Nx        int                `json:"nx"`
	Ny        int                `json:"ny"`
	Nz        int                `json:"nz"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Chi       float64            `json:"chi"`
	Viscosity float64            `json:"viscosity"`
	Backend   string             `json:"backend"`
	Steps     int                `json:"steps"`
	Final     map[string]float64 `json:"final"`
}

// Series holds the per-step diagnostic traces of one run.
type Series struct {
	Times      []float64
	Energy     []float64
	Divergence []float64
	CFL        []float64
}

// Append records one step's diagnostics.
func (r *Series) Append(t, energy, divergence, cfl float64) {
	r.Times = append(r.Times, t)
	r.Energy = append(r.Energy, energy)
	r.Divergence = append(r.Divergence, divergence)
	r.CFL = append(r.CFL, cfl)
}

func (r *Series) Len() int { return len(r.Times) }

// Save writes a run directory with metadata.json and series.csv, returning
// the generated run ID.
func (s *Store) Save(cfg *config.Config, backend string, series *Series) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Preset:    cfg.Preset,
		Nx:        cfg.Grid.Nx,
		Ny:        cfg.Grid.Ny,
		Nz:        cfg.Grid.Nz,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Chi:       cfg.Chi,
		Viscosity: cfg.Closure.Viscosity,
		Backend:   backend,
		Steps:     series.Len(),
		Final:     make(map[string]float64),
	}
	if n := series.Len(); n > 0 {
		meta.Final["energy"] = series.Energy[n-1]
		meta.Final["max_divergence"] = series.Divergence[n-1]
		meta.Final["cfl"] = series.CFL[n-1]
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "series.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "energy", "max_divergence", "cfl"}); err != nil {
		return "", err
	}
	for i := 0; i < series.Len(); i++ {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'g', -1, 64),
			strconv.FormatFloat(series.Energy[i], 'g', -1, 64),
			strconv.FormatFloat(series.Divergence[i], 'g', -1, 64),
			strconv.FormatFloat(series.CFL[i], 'g', -1, 64),
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for n := 0; n < 4; n++ {
			v, err := strconv.ParseFloat(rec[n], 64)
			if err != nil {
				ok = false
				break
			}
			vals[n] = v
		}
		if !ok {
			continue
		}
		series.Append(vals[0], vals[1], vals[2], vals[3])
	}
	return series, nil
}
