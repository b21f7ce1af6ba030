package config

import "github.com/runnerr0/stridelog/internal/calibrate"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Dir:         "",
			SourceStyle: "pedometer",
		},
		Storage: StorageConfig{
			Path:       "~/.config/stridelog",
			SQLiteFile: "stridelog.db",
		},
		Calibration: CalibrationConfig{
			StrideShortKm: calibrate.DefaultStrideShortKm,
			StrideLongKm:  calibrate.DefaultStrideLongKm,
		},
		Clusters: []ClusterConfig{},
		Calendar: CalendarConfig{},
		Output: OutputConfig{
			CSVFile:  "steps_timeline.csv",
			ChartDir: "charts",
		},
	}
}
