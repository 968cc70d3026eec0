// Package parquet provides data structures and functions for exporting size
// check history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/sizegate/sizegate/schema"
)

// CheckRun represents a single size check run with metadata.
// This struct maps to the sizegate_runs database table.
type CheckRun struct {
	// RunID is the unique identifier for this check run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the check began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// DurationMs is the duration of the check run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// TotalResults is the number of (component, variant) results in this run
	TotalResults int32 `parquet:"total_results,snappy"`

	// Passed is true when no threshold was exceeded
	Passed bool `parquet:"passed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SizeMeasurement represents one (component, variant) size measurement.
// This struct maps to the sizegate_results database table.
type SizeMeasurement struct {
	// RunID references the parent check run
	RunID int64 `parquet:"run_id,snappy"`

	// ResultKey is the baseline key for this measurement
	ResultKey string `parquet:"result_key,snappy"`

	// Component is the configured component name
	Component string `parquet:"component,snappy"`

	// Variant distinguishes primary, runtime and full bundle measurements
	Variant string `parquet:"variant,snappy"`

	// RawBytes is the uncompressed size in bytes
	RawBytes int64 `parquet:"raw_bytes,snappy"`

	// GzipBytes is the gzip-compressed size in bytes (0 when gzip is disabled)
	GzipBytes int64 `parquet:"gzip_bytes,snappy"`

	// BrotliBytes is the brotli-compressed size in bytes (0 when brotli is disabled)
	BrotliBytes int64 `parquet:"brotli_bytes,snappy"`

	// ExceedsMaxSize is true when the raw size exceeded the absolute cap
	ExceedsMaxSize bool `parquet:"exceeds_max,snappy"`

	// ExceedsWarnIncrease is true when growth over baseline exceeded the limit
	ExceedsWarnIncrease bool `parquet:"exceeds_warn,snappy"`
}

// WriteCheckRunsParquet writes a slice of CheckRun structs to a Parquet file.
func WriteCheckRunsParquet(data []CheckRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the CheckRun struct tags
	writer := parquet.NewGenericWriter[CheckRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSizeMeasurementsParquet writes a slice of SizeMeasurement structs to a Parquet file.
func WriteSizeMeasurementsParquet(data []SizeMeasurement, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the SizeMeasurement struct tags
	writer := parquet.NewGenericWriter[SizeMeasurement](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts history run records to their Parquet representation.
func ConvertRunRecords(records []schema.RunRecord) []CheckRun {
	runs := make([]CheckRun, len(records))
	for i, r := range records {
		var params *string
		if r.ConfigParams != "" {
			p := r.ConfigParams
			params = &p
		}
		runs[i] = CheckRun{
			RunID:        r.RunID,
			StartTime:    r.StartTime,
			DurationMs:   r.DurationMs,
			TotalResults: int32(r.TotalResults),
			Passed:       r.Passed,
			ConfigParams: params,
		}
	}
	return runs
}

// ConvertResultRecords converts history result records to their Parquet representation.
func ConvertResultRecords(records []schema.ResultRecord) []SizeMeasurement {
	measurements := make([]SizeMeasurement, len(records))
	for i, r := range records {
		measurements[i] = SizeMeasurement{
			RunID:               r.RunID,
			ResultKey:           r.ResultKey,
			Component:           r.Component,
			Variant:             r.Variant,
			RawBytes:            r.RawBytes,
			GzipBytes:           r.GzipBytes,
			BrotliBytes:         r.BrotliBytes,
			ExceedsMaxSize:      r.ExceedsMaxSize,
			ExceedsWarnIncrease: r.ExceedsWarnIncrease,
		}
	}
	return measurements
}
