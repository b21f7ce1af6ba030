package storage

import "time"

// RunRecord captures the coverage counters of one ingestion pass.
type RunRecord struct {
	ID               int64
	StartedAt        time.Time
	ExportDir        string
	FragmentsFound   int
	RecordsParsed    int
	FragmentsSkipped int
	ClustersMatched  int
	TimelineDays     int
}

// Stats holds aggregate statistics about the stored timeline.
type Stats struct {
	TimelineDays    int64
	ActiveDays      int64 // days with steps > 0
	TotalSteps      int64
	TotalDistanceKm float64
	FirstDay        string
	LastDay         string
	Runs            int64
}
