package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/particles"
)

// ParticleRecord is one row of particles.csv.
type ParticleRecord struct {
	Index    int     `csv:"index"`
	Layer    int     `csv:"layer"`
	Color    string  `csv:"color"`
	Scale    float64 `csv:"scale"`
	TextX    float64 `csv:"text_x"`
	TextY    float64 `csv:"text_y"`
	TextZ    float64 `csv:"text_z"`
	ScatterX float64 `csv:"scatter_x"`
	ScatterY float64 `csv:"scatter_y"`
	ScatterZ float64 `csv:"scatter_z"`
}

// ParticleRecords flattens particles for CSV export.
func ParticleRecords(ps []particles.Particle) []ParticleRecord {
	records := make([]ParticleRecord, len(ps))
	for i := range ps {
		p := &ps[i]
		records[i] = ParticleRecord{
			Index:    i,
			Layer:    p.Layer,
			Color:    p.Color.String(),
			Scale:    p.Scale,
			TextX:    p.TextPosition.X,
			TextY:    p.TextPosition.Y,
			TextZ:    p.TextPosition.Z,
			ScatterX: p.ScatterPosition.X,
			ScatterY: p.ScatterPosition.Y,
			ScatterZ: p.ScatterPosition.Z,
		}
	}
	return records
}

// WriteParticles writes the particle list as CSV with a header row.
func WriteParticles(w io.Writer, ps []particles.Particle) error {
	records := ParticleRecords(ps)
	if len(records) == 0 {
		// gocsv cannot derive headers from an empty slice
		return gocsv.MarshalWithoutHeaders(records, w)
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing particles: %w", err)
	}
	return nil
}

// OutputManager handles run output: frame stats, perf and bookmarks as CSV, the
// generated particles and a config snapshot.
type OutputManager struct {
	dir          string
	frameFile    *os.File
	perfFile     *os.File
	bookmarkFile *os.File

	frameHeaderWritten    bool
	perfHeaderWritten     bool
	bookmarkHeaderWritten bool
}

// NewOutputManager creates the output directory and opens the CSV files.
// Returns nil if dir is empty (output disabled); all methods accept a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.frameFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.frameFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		om.frameFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating bookmarks.csv: %w", err)
	}
	om.bookmarkFile = f

	return om, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteParticles saves the generated particle list.
func (om *OutputManager) WriteParticles(ps []particles.Particle) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "particles.csv"))
	if err != nil {
		return fmt.Errorf("creating particles.csv: %w", err)
	}
	defer f.Close()
	return WriteParticles(f, ps)
}

// WriteFrame appends a frame stats row to frames.csv.
func (om *OutputManager) WriteFrame(stats FrameStats) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.frameFile, []FrameStats{stats}, &om.frameHeaderWritten); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}

// WritePerf appends a perf row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.perfFile, []PerfStatsCSV{stats.ToCSV(frame)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmarks appends bookmark rows to bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bookmarks []Bookmark) error {
	if om == nil || len(bookmarks) == 0 {
		return nil
	}
	if err := writeRow(om.bookmarkFile, bookmarks, &om.bookmarkHeaderWritten); err != nil {
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	return nil
}

// writeRow marshals records, emitting the header only on the first write.
func writeRow(w io.Writer, records any, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, w)
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return err
	}
	*headerWritten = true
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
	for _, f := range []*os.File{om.frameFile, om.perfFile, om.bookmarkFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
