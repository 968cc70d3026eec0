package history

import (
	"errors"
	"fmt"

	"github.com/sizegate/sizegate/internal/parquet"
)

// ExecuteHistoryExport exports the full run history to Parquet files.
func ExecuteHistoryExport(store Store, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled; set history-backend to export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total check runs: %d\n", status.TotalRuns)
	fmt.Printf("Total size records: %d\n", status.TableSizes[resultsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve check runs: %w", err)
	}

	results, err := store.GetAllResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve size records: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetResults := parquet.ConvertResultRecords(results)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteCheckRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write check runs: %w", err)
	}
	fmt.Printf("Exported %d check runs to: %s\n", len(parquetRuns), runsFile)

	resultsFile := outputFile + ".results.parquet"
	if err := parquet.WriteSizeMeasurementsParquet(parquetResults, resultsFile); err != nil {
		return fmt.Errorf("failed to write size records: %w", err)
	}
	fmt.Printf("Exported %d size records to: %s\n", len(parquetResults), resultsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
