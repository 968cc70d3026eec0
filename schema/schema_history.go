package schema

import "time"

// RunRecord is one persisted check run.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	DurationMs   int64
	TotalResults int
	Passed       bool
	ConfigParams string
}

// ResultRecord is one persisted (component, variant) measurement.
type ResultRecord struct {
	RunID               int64
	ResultKey           string
	Component           string
	Variant             string
	RawBytes            int64
	GzipBytes           int64
	BrotliBytes         int64
	ExceedsMaxSize      bool
	ExceedsWarnIncrease bool
}

// HistoryStatus summarizes the history store contents.
type HistoryStatus struct {
	Backend       DatabaseBackend
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TableSizes    map[string]int64
}
