package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sizeschema "github.com/sizegate/sizegate/schema"
)

func TestCheckRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(CheckRun))
	require.NotNil(t, schema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"start_time",
		"duration_ms",
		"total_results",
		"passed",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestSizeMeasurementStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(SizeMeasurement))
	require.NotNil(t, schema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"result_key",
		"component",
		"variant",
		"raw_bytes",
		"gzip_bytes",
		"brotli_bytes",
		"exceeds_max",
		"exceeds_warn",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteCheckRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	params := `{"components":2}`
	data := []CheckRun{
		{RunID: 1, StartTime: time.Now().UTC(), DurationMs: 1500, TotalResults: 2, Passed: true, ConfigParams: &params},
		{RunID: 2, StartTime: time.Now().UTC(), DurationMs: 900, TotalResults: 2, Passed: false},
	}

	require.NoError(t, WriteCheckRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Read the rows back to confirm the round trip
	rows, err := parquet.ReadFile[CheckRun](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	assert.True(t, rows[0].Passed)
	require.NotNil(t, rows[0].ConfigParams)
	assert.Equal(t, params, *rows[0].ConfigParams)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestWriteSizeMeasurementsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.parquet")
	data := []SizeMeasurement{
		{RunID: 1, ResultKey: "button/index.js", Component: "button", Variant: "primary", RawBytes: 10240, GzipBytes: 3072, BrotliBytes: 2048},
		{RunID: 1, ResultKey: "card", Component: "card", Variant: "primary", RawBytes: 25600, ExceedsMaxSize: true},
	}

	require.NoError(t, WriteSizeMeasurementsParquet(data, outputPath))

	rows, err := parquet.ReadFile[SizeMeasurement](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "button/index.js", rows[0].ResultKey)
	assert.True(t, rows[1].ExceedsMaxSize)
}

func TestConvertRecords(t *testing.T) {
	start := time.Now().UTC()
	runs := ConvertRunRecords([]sizeschema.RunRecord{
		{RunID: 3, StartTime: start, DurationMs: 100, TotalResults: 1, Passed: true, ConfigParams: `{"workers":4}`},
		{RunID: 4, StartTime: start, DurationMs: 200, TotalResults: 1, Passed: false},
	})
	require.Len(t, runs, 2)
	assert.Equal(t, int64(3), runs[0].RunID)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Equal(t, `{"workers":4}`, *runs[0].ConfigParams)
	assert.Nil(t, runs[1].ConfigParams)

	results := ConvertResultRecords([]sizeschema.ResultRecord{
		{RunID: 3, ResultKey: "button", Component: "button", Variant: "primary", RawBytes: 512, ExceedsWarnIncrease: true},
	})
	require.Len(t, results, 1)
	assert.Equal(t, "button", results[0].Component)
	assert.True(t, results[0].ExceedsWarnIncrease)
}
