package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/mkord/rps-arena/config"
)

// csvStream appends records to one CSV file, emitting the header row on
// first use only.
type csvStream struct {
	file        *os.File
	wroteHeader bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{file: f}, nil
}

func (s *csvStream) append(records any) error {
	if !s.wroteHeader {
		s.wroteHeader = true
		return gocsv.Marshal(records, s.file)
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

func (s *csvStream) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager writes run artifacts into one directory: windows.csv,
// rounds.csv, perf.csv and a snapshot of the effective config. A nil
// manager is valid and discards everything.
type OutputManager struct {
	dir     string
	windows *csvStream
	rounds  *csvStream
	perf    *csvStream
}

// NewOutputManager creates the output directory and its CSV streams.
// An empty dir disables output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.windows, err = openStream(dir, "windows.csv"); err != nil {
		return nil, err
	}
	if om.rounds, err = openStream(dir, "rounds.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.perf, err = openStream(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig snapshots the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends one telemetry window to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.windows.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing window stats: %w", err)
	}
	return nil
}

// WriteRound appends a completed round to rounds.csv.
func (om *OutputManager) WriteRound(rec RoundRecord) error {
	if om == nil {
		return nil
	}
	if err := om.rounds.append([]RoundRecord{rec}); err != nil {
		return fmt.Errorf("writing round record: %w", err)
	}
	return nil
}

// WritePerf appends a perf snapshot for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
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

// Close closes every stream, returning the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvStream{om.windows, om.rounds, om.perf} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
