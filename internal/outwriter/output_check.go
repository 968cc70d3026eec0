package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/internal/parquet"
	"github.com/sizegate/sizegate/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCheckResults outputs the size check results, dispatching based on the
// output format configured.
func WriteCheckResults(result *schema.CheckRunResult, cfg *contract.Config, duration time.Duration) error {
	fmtKB := createKBFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCheckJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCheckCSVResults(result, cfg, fmtKB); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeCheckParquetResults(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckTable(result, cfg, fmtKB, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCheckJSONResults handles opening the file and calling the JSON writer.
func writeCheckJSONResults(result *schema.CheckRunResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONCheckResults(w, result)
	}, "Wrote JSON")
}

// writeCheckCSVResults handles opening the file and calling the CSV writer.
func writeCheckCSVResults(result *schema.CheckRunResult, cfg *contract.Config, fmtKB func(int64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, checkCSVHeader(cfg), func(csvWriter *csv.Writer) error {
			return writeCSVCheckRows(csvWriter, result, cfg, fmtKB)
		})
	}, "Wrote CSV")
}

// writeCheckParquetResults writes the per-variant measurements as a Parquet
// file. Unlike the other formats there is no stdout fallback: Parquet is a
// binary format and requires --output-file.
func writeCheckParquetResults(result *schema.CheckRunResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}

	measurements := make([]parquet.SizeMeasurement, len(result.Results))
	for i, cr := range result.Results {
		measurements[i] = parquet.SizeMeasurement{
			ResultKey:           cr.Key,
			Component:           cr.Component,
			Variant:             string(cr.Variant),
			RawBytes:            cr.Size.RawBytes,
			GzipBytes:           cr.Size.GzipBytes,
			BrotliBytes:         cr.Size.BrotliBytes,
			ExceedsMaxSize:      cr.ExceedsMaxSize,
			ExceedsWarnIncrease: cr.ExceedsWarnIncrease,
		}
	}

	if err := parquet.WriteSizeMeasurementsParquet(measurements, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d size records to: %s\n", len(measurements), cfg.OutputFile)
	return nil
}

// writeCheckTable generates and writes the human-readable table.
func writeCheckTable(result *schema.CheckRunResult, cfg *contract.Config, fmtKB func(int64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Key", "Files", "Raw KB"}
	if cfg.Compression.Gzip {
		headers = append(headers, "Gzip KB")
	}
	if cfg.Compression.Brotli {
		headers = append(headers, "Brotli KB")
	}
	headers = append(headers, "Max Size", "Prev KB", "Delta %", "Status")
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i := range result.Results {
		cr := &result.Results[i]
		row := []string{
			contract.TruncateKey(cr.Key, getMaxTableKeyWidth(cfg)), // Key
			strconv.Itoa(cr.FileCount),                             // Files
			fmtKB(cr.Size.RawBytes),                                // Raw KB
		}
		if cfg.Compression.Gzip {
			row = append(row, fmtKB(cr.Size.GzipBytes)) // Gzip KB
		}
		if cfg.Compression.Brotli {
			row = append(row, fmtKB(cr.Size.BrotliBytes)) // Brotli KB
		}
		row = append(row,
			displayMaxSize(cr),             // Max Size
			displayPrevious(cr, fmtKB),     // Prev KB
			displayPercentIncrease(cr),     // Delta %
			statusCell(cr, cfg.UseColors),  // Status
		)
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	var totalRaw int64
	failures := 0
	for i := range result.Results {
		totalRaw += result.Results[i].Size.RawBytes
		if result.Results[i].Failed() {
			failures++
		}
	}
	if _, err := fmt.Fprintf(writer, "Checked %d component(s), %d result(s), %s raw total, %d violation(s)\n",
		result.TotalComponents, len(result.Results), contract.FormatKB(totalRaw), failures); err != nil {
		return err
	}
	for i := range result.Results {
		cr := &result.Results[i]
		if !cr.ExceedsMaxSize {
			continue
		}
		if _, err := fmt.Fprintf(writer, "%s is %s over its %s limit\n",
			cr.Key, contract.FormatKB(cr.OverflowBytes), cr.MaxSize); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Check completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// checkCSVHeader returns the CSV header for the configured compression codecs.
func checkCSVHeader(cfg *contract.Config) []string {
	header := []string{"key", "component", "variant", "files", "raw_kb"}
	if cfg.Compression.Gzip {
		header = append(header, "gzip_kb")
	}
	if cfg.Compression.Brotli {
		header = append(header, "brotli_kb")
	}
	return append(header, "max_size", "previous_kb", "percentage_increase", "status")
}

// writeCSVCheckRows writes the check results in CSV format.
func writeCSVCheckRows(w *csv.Writer, result *schema.CheckRunResult, cfg *contract.Config, fmtKB func(int64) string) error {
	for i := range result.Results {
		cr := &result.Results[i]
		rec := []string{
			cr.Key,                     // Result key
			cr.Component,               // Component name
			string(cr.Variant),         // Variant
			strconv.Itoa(cr.FileCount), // File count
			fmtKB(cr.Size.RawBytes),    // Raw size in KB
		}
		if cfg.Compression.Gzip {
			rec = append(rec, fmtKB(cr.Size.GzipBytes)) // Gzip size in KB
		}
		if cfg.Compression.Brotli {
			rec = append(rec, fmtKB(cr.Size.BrotliBytes)) // Brotli size in KB
		}
		rec = append(rec,
			cr.MaxSize,                  // Configured cap
			displayPrevious(cr, fmtKB),  // Previous size in KB
			cr.PercentageIncrease,       // Growth over baseline
			contract.GetPlainStatus(cr), // Status
		)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONCheckResults writes the check results in JSON format.
func writeJSONCheckResults(w io.Writer, result *schema.CheckRunResult) error {
	// 1. Prepare the data structure for JSON with the status label added
	type JSONCheckResult struct {
		Status string `json:"status"`
		schema.ComparisonResult
	}

	output := struct {
		Results         []JSONCheckResult      `json:"results"`
		Failures        []schema.FailureRecord `json:"failures,omitempty"`
		HasWarnings     bool                   `json:"hasWarnings"`
		TotalComponents int                    `json:"totalComponents"`
	}{
		Failures:        result.Failures,
		HasWarnings:     result.HasWarnings,
		TotalComponents: result.TotalComponents,
	}
	output.Results = make([]JSONCheckResult, len(result.Results))
	for i, cr := range result.Results {
		output.Results[i] = JSONCheckResult{
			Status:           contract.GetPlainStatus(&cr),
			ComparisonResult: cr,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// displayMaxSize renders the configured cap, or a dash when no limit is set.
func displayMaxSize(cr *schema.ComparisonResult) string {
	if cr.MaxSizeBytes == nil {
		return "-"
	}
	return cr.MaxSize
}

// displayPrevious renders the baseline size, or a dash on first sight.
func displayPrevious(cr *schema.ComparisonResult, fmtKB func(int64) string) string {
	if !cr.HasBaseline {
		return "-"
	}
	return fmtKB(cr.PreviousSizeBytes)
}

// displayPercentIncrease renders the growth column with an explicit sign.
func displayPercentIncrease(cr *schema.ComparisonResult) string {
	if !cr.HasBaseline {
		return schema.NoBaselineSentinel
	}
	if cr.PercentageIncreaseValue > 0 {
		return "+" + cr.PercentageIncrease + "%"
	}
	return cr.PercentageIncrease + "%"
}

// statusCell renders the status column, colored for terminals when enabled.
func statusCell(cr *schema.ComparisonResult, useColors bool) string {
	if useColors {
		return contract.GetColorStatus(cr)
	}
	return contract.GetPlainStatus(cr)
}
