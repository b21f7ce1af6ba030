package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/stridelog/internal/timeline"
)

// Default config file path.
const DefaultConfigPath = "~/.config/stridelog/config.yaml"

// Config holds all stridelog configuration.
type Config struct {
	Export      ExportConfig      `yaml:"export"`
	Storage     StorageConfig     `yaml:"storage"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Clusters    []ClusterConfig   `yaml:"clusters"`
	Calendar    CalendarConfig    `yaml:"calendar"`
	Output      OutputConfig      `yaml:"output"`
}

type ExportConfig struct {
	// Dir is the root of the export tree to scan for fragments.
	Dir string `yaml:"dir"`
	// SourceStyle keeps only fragments of one export dialect
	// ("pedometer" or "shealth"); empty keeps both.
	SourceStyle string `yaml:"source_style"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type CalibrationConfig struct {
	StrideShortKm float64 `yaml:"stride_short_km"`
	StrideLongKm  float64 `yaml:"stride_long_km"`
}

// ClusterConfig is one known run of consecutive days whose step counts and
// real start date are ground truth.
type ClusterConfig struct {
	StartDate string `yaml:"start_date"`
	Steps     []int  `yaml:"steps"`
}

type CalendarConfig struct {
	// Start and End bound the output calendar ("2006-01-02"). When both are
	// empty the span is derived from the clusters.
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type OutputConfig struct {
	CSVFile  string `yaml:"csv_file"`
	ChartDir string `yaml:"chart_dir"`
}

// Load reads a YAML config file at path and merges it with defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// DatabasePath returns the resolved SQLite file path.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// TimelineClusters converts the configured clusters to their timeline form.
func (c *Config) TimelineClusters() ([]timeline.Cluster, error) {
	clusters := make([]timeline.Cluster, 0, len(c.Clusters))
	for _, cc := range c.Clusters {
		day, err := timeline.ParseDay(cc.StartDate)
		if err != nil {
			return nil, fmt.Errorf("cluster %q: %w", cc.StartDate, err)
		}
		steps := make([]int, len(cc.Steps))
		copy(steps, cc.Steps)
		clusters = append(clusters, timeline.Cluster{StartDay: day, Steps: steps})
	}
	return clusters, nil
}

// CalendarSpan returns the configured calendar bounds, or (0, 0) when the
// span should be derived from the clusters. Setting only one bound is a
// configuration error.
func (c *Config) CalendarSpan() (timeline.Day, timeline.Day, error) {
	if c.Calendar.Start == "" && c.Calendar.End == "" {
		return 0, 0, nil
	}
	if c.Calendar.Start == "" || c.Calendar.End == "" {
		return 0, 0, fmt.Errorf("calendar: start and end must be set together")
	}
	start, err := timeline.ParseDay(c.Calendar.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("calendar start: %w", err)
	}
	end, err := timeline.ParseDay(c.Calendar.End)
	if err != nil {
		return 0, 0, fmt.Errorf("calendar end: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("calendar: end %s before start %s", c.Calendar.End, c.Calendar.Start)
	}
	return start, end, nil
}
