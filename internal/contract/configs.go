package contract

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/sizegate/sizegate/schema"
)

// Default values for configuration.
const (
	DefaultConfigName      = "sizegate.config"
	DefaultConfigFile      = "sizegate.config.json"
	DefaultBaselineFile    = ".sizegate-baseline.json"
	DefaultReportFile      = "sizegate-report.json"
	DefaultEntryFilename   = "index.js"
	DefaultRuntimeFilename = "react.js"
	DefaultPrecision       = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// CompressionConfig enables each compressed-size metric.
type CompressionConfig struct {
	Gzip   bool
	Brotli bool
}

// ComponentConfig identifies one logical bundle after validation.
// Exactly one file-selection mode is configured: explicit include patterns,
// or a distribution folder scanned for script files.
type ComponentConfig struct {
	Name               string
	MaxSize            string
	WarnOnIncrease     string // already defaulted from defaults.warnOnIncrease
	Include            []string
	Exclude            []string
	DistFolderLocation string
}

// FolderScan reports whether this component uses distribution-folder scanning.
func (c *ComponentConfig) FolderScan() bool {
	return c.DistFolderLocation != ""
}

// Config holds the runtime configuration for a size check run.
// This struct remains the "final, validated" config: every optional field is
// defaulted here at load time, never coalesced ad hoc at call sites.
type Config struct {
	BaselineFile string
	ReportFile   string

	Compression     CompressionConfig
	EntryFilename   string
	RuntimeFilename string

	// GlobalExcludes are merged into every component's excludes.
	GlobalExcludes []string

	// Components are sorted by name so runs are deterministic.
	Components []ComponentConfig

	Workers    int
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.GlobalExcludes != nil {
		clone.GlobalExcludes = make([]string, len(c.GlobalExcludes))
		copy(clone.GlobalExcludes, c.GlobalExcludes)
	}
	if c.Components != nil {
		clone.Components = make([]ComponentConfig, len(c.Components))
		copy(clone.Components, c.Components)
		for i, comp := range c.Components {
			if comp.Include != nil {
				clone.Components[i].Include = append([]string(nil), comp.Include...)
			}
			if comp.Exclude != nil {
				clone.Components[i].Exclude = append([]string(nil), comp.Exclude...)
			}
		}
	}
	return &clone
}

// ComponentRawInput holds one component entry as read from the config file.
type ComponentRawInput struct {
	MaxSize            string   `mapstructure:"maxSize"`
	WarnOnIncrease     string   `mapstructure:"warnOnIncrease"`
	Include            []string `mapstructure:"include"`
	Exclude            []string `mapstructure:"exclude"`
	DistFolderLocation string   `mapstructure:"distFolderLocation"`
}

// CompressionRawInput holds the compression toggles from the config file.
// Pointers distinguish "absent" (default true) from an explicit false.
type CompressionRawInput struct {
	Gzip   *bool `mapstructure:"gzip"`
	Brotli *bool `mapstructure:"brotli"`
}

// DefaultsRawInput holds fallback values applied to every component.
type DefaultsRawInput struct {
	WarnOnIncrease string `mapstructure:"warnOnIncrease"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from the config file ---

	// Exclude accepts a single glob string or an array of glob strings.
	Exclude         any                          `mapstructure:"exclude"`
	Compression     CompressionRawInput          `mapstructure:"compression"`
	BaselineFile    string                       `mapstructure:"baselineFile"`
	ReportFile      string                       `mapstructure:"reportFile"`
	EntryFilename   string                       `mapstructure:"entryFilename"`
	RuntimeFilename string                       `mapstructure:"runtimeFilename"`
	Defaults        DefaultsRawInput             `mapstructure:"defaults"`
	Components      map[string]ComponentRawInput `mapstructure:"components"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCompression(cfg, input); err != nil {
		return err
	}
	if err := processGlobalExcludes(cfg, input); err != nil {
		return err
	}
	if err := processComponents(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-component fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- File path defaults ---
	cfg.BaselineFile = input.BaselineFile
	if cfg.BaselineFile == "" {
		cfg.BaselineFile = DefaultBaselineFile
	}
	cfg.ReportFile = input.ReportFile
	if cfg.ReportFile == "" {
		cfg.ReportFile = DefaultReportFile
	}

	// --- Variant filename defaults ---
	cfg.EntryFilename = input.EntryFilename
	if cfg.EntryFilename == "" {
		cfg.EntryFilename = DefaultEntryFilename
	}
	cfg.RuntimeFilename = input.RuntimeFilename
	if cfg.RuntimeFilename == "" {
		cfg.RuntimeFilename = DefaultRuntimeFilename
	}

	// --- Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- Color flag ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- History backend Validation ---
	backend := input.HistoryBackend
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// processCompression applies the default-true compression toggles.
func processCompression(cfg *Config, input *ConfigRawInput) error {
	cfg.Compression = CompressionConfig{Gzip: true, Brotli: true}
	if input.Compression.Gzip != nil {
		cfg.Compression.Gzip = *input.Compression.Gzip
	}
	if input.Compression.Brotli != nil {
		cfg.Compression.Brotli = *input.Compression.Brotli
	}
	return nil
}

// processGlobalExcludes normalizes the top-level exclude field, which the
// config file may give as a single glob string or an array of glob strings.
func processGlobalExcludes(cfg *Config, input *ConfigRawInput) error {
	cfg.GlobalExcludes = nil
	switch v := input.Exclude.(type) {
	case nil:
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cfg.GlobalExcludes = []string{trimmed}
		}
	case []string:
		for _, p := range v {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.GlobalExcludes = append(cfg.GlobalExcludes, trimmed)
			}
		}
	case []any:
		for _, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("exclude entries must be strings (received %T)", raw)
			}
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				cfg.GlobalExcludes = append(cfg.GlobalExcludes, trimmed)
			}
		}
	default:
		return fmt.Errorf("exclude must be a glob string or an array of glob strings (received %T)", v)
	}
	return nil
}

// processComponents validates every component's file-selection spec and
// applies the defaults.warnOnIncrease fallback in one place.
func processComponents(cfg *Config, input *ConfigRawInput) error {
	if len(input.Components) == 0 {
		return fmt.Errorf("no components configured")
	}

	names := make([]string, 0, len(input.Components))
	for name := range input.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	cfg.Components = make([]ComponentConfig, 0, len(names))
	for _, name := range names {
		raw := input.Components[name]

		hasInclude := len(raw.Include) > 0
		hasDist := strings.TrimSpace(raw.DistFolderLocation) != ""
		if !hasInclude && !hasDist {
			return fmt.Errorf("component %q must configure include patterns or distFolderLocation", name)
		}
		if hasInclude && hasDist {
			return fmt.Errorf("component %q configures both include patterns and distFolderLocation; pick one", name)
		}

		warn := raw.WarnOnIncrease
		if warn == "" {
			warn = input.Defaults.WarnOnIncrease
		}

		cfg.Components = append(cfg.Components, ComponentConfig{
			Name:               name,
			MaxSize:            raw.MaxSize,
			WarnOnIncrease:     warn,
			Include:            raw.Include,
			Exclude:            raw.Exclude,
			DistFolderLocation: strings.TrimSpace(raw.DistFolderLocation),
		})
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
