package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/internal/history"
	"github.com/sizegate/sizegate/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := history.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize history tracking: %w", err)
	}
	historyStore = store

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// requireHistoryStore guards subcommands that need an open store.
func requireHistoryStore() (history.Store, error) {
	if historyStore == nil {
		return nil, fmt.Errorf("history tracking is disabled; set --history-backend (or SIZEGATE_HISTORY_BACKEND) to sqlite, mysql or postgresql")
	}
	return historyStore, nil
}

// historyCmd focused on run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by the check command. This avoids component
// validation for simple store operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage size check run history and exports",
	Long: `Manage historical size check data used for trend tracking and reporting.

When enabled, Sizegate records every check run, storing:
- Run metadata (timestamp, configuration, duration, outcome)
- Raw, gzip and brotli sizes per component variant
- Threshold outcomes per result key

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show run history statistics
  runs    - List recent check runs
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  sizegate history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  sizegate history export --history-backend sqlite --output-file size-data.parquet`,
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about size check run history.

Displays:
- Backend type and connection status
- Total number of check runs stored
- Last and oldest run timestamps
- Database table sizes

Examples:
  # Check history tracking status
  sizegate history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := requireHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintStatus(status)
	},
}

// historyRunsCmd lists recent check runs.
var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent check runs, newest first",
	Long: `List recent size check runs with their outcome and duration.

Examples:
  # Last 10 runs
  sizegate history runs --history-backend sqlite

  # Last 50 runs
  sizegate history runs --history-backend sqlite --limit 50`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := requireHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		runs, err := store.GetRecentRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		history.PrintRecentRuns(runs)
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all size check run history",
	Long: `Delete all stored check runs and size measurements.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  sizegate history export --history-backend sqlite --output-file backup.parquet
  sizegate history clear --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := requireHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run history to Parquet format for use with analytics tools.

Exports two datasets:
- Check runs - metadata about each run
- Size measurements - raw/gzip/brotli sizes per component variant

Requires: --output-file parameter

Examples:
  # Export all data
  sizegate history export --history-backend sqlite --output-file size-data

  # Use with DuckDB for analysis
  sizegate history export --history-backend sqlite --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.results.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(historyStore, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  sizegate history migrate --history-backend sqlite

  # Migrate to specific version
  sizegate history migrate --history-backend sqlite --target-version 1

  # Rollback to previous version
  sizegate history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
