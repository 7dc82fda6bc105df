package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/noel/config"
)

// OutputManager writes run artifacts (config snapshot, perf.csv, placement.csv)
// into one directory.
type OutputManager struct {
	dir           string
	perfFile      *os.File
	placementFile *os.File

	perf      *csvStream[PerfStatsCSV]
	placement *csvStream[PlacementStats]
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f
	om.perf = newCSVStream[PerfStatsCSV](f)

	f, err = os.Create(filepath.Join(dir, "placement.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating placement.csv: %w", err)
	}
	om.placementFile = f
	om.placement = newCSVStream[PlacementStats](f)

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a perf row for the window ending at frame.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.Write(stats.ToCSV(frame)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WritePlacement appends a placement row for one generated scene.
func (om *OutputManager) WritePlacement(stats PlacementStats) error {
	if om == nil {
		return nil
	}
	if err := om.placement.Write(stats); err != nil {
		return fmt.Errorf("writing placement: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.perfFile, om.placementFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// csvStream appends records to a CSV writer, emitting the header once.
type csvStream[T any] struct {
	w             io.Writer
	headerWritten bool
}

func newCSVStream[T any](w io.Writer) *csvStream[T] {
	return &csvStream[T]{w: w}
}

// Write appends one record.
func (s *csvStream[T]) Write(rec T) error {
	records := []T{rec}
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.w); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.w)
}

// WriteCSV writes records with a header to w in one pass.
func WriteCSV[T any](w io.Writer, records []T) error {
	return gocsv.Marshal(records, w)
}
