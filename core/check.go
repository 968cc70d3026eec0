package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/internal/history"
	"github.com/sizegate/sizegate/internal/outwriter"
	"github.com/sizegate/sizegate/schema"
)

// variant is one keyed combination of a component's bundle files.
type variant struct {
	Key   string
	Label schema.VariantLabel
	Files []string
}

// Runner owns all mutable state for one size check run: the results
// accumulator, the failure records and the warnings flag. A fresh Runner is
// created per invocation so repeated or parallel runs in one process never
// share state.
type Runner struct {
	cfg        *contract.Config
	resolver   *Resolver
	calculator *Calculator
	baseline   *BaselineStore

	results     []schema.ComparisonResult
	failures    []schema.FailureRecord
	hasWarnings bool
}

// NewRunner wires a Runner with production collaborators on the given
// filesystem. Tests pass a fake filesystem.
func NewRunner(cfg *contract.Config, fs contract.FileSystem) *Runner {
	return &Runner{
		cfg:        cfg,
		resolver:   NewResolver(fs),
		calculator: NewCalculator(fs, contract.NewGzipCompressor(), contract.NewBrotliCompressor(), cfg.Workers),
		baseline:   NewBaselineStore(cfg.BaselineFile),
	}
}

// Run drives the full pipeline: for each component, resolve files, calculate
// sizes and evaluate thresholds per variant; then persist the baseline.
//
// A resolution or calculation error aborts the whole run before any baseline
// write. Threshold violations are not errors: the run completes, the baseline
// is persisted (size history tracks reality even through violations), and the
// outcome is reported through CheckRunResult.HasWarnings.
func (r *Runner) Run(ctx context.Context) (*schema.CheckRunResult, error) {
	prior := r.baseline.Load()
	current := schema.BaselineMap{}

	for i := range r.cfg.Components {
		comp := &r.cfg.Components[i]

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		set, err := r.resolver.ResolveComponent(r.cfg, comp)
		if err != nil {
			return nil, err
		}

		for _, v := range buildVariants(r.cfg, comp, set) {
			size, err := r.calculator.Calculate(v.Files, r.cfg.Compression)
			if err != nil {
				return nil, fmt.Errorf("component %q: %w", comp.Name, err)
			}

			cr := Evaluate(size, v.Key, prior, Limits{
				MaxSize:        comp.MaxSize,
				WarnOnIncrease: comp.WarnOnIncrease,
			})
			cr.Component = comp.Name
			cr.Variant = v.Label
			cr.FileCount = len(v.Files)

			r.results = append(r.results, cr)
			current[v.Key] = size.RawBytes

			if cr.ExceedsMaxSize {
				r.failures = append(r.failures, schema.FailureRecord{
					Component:         v.Key,
					ExpectedThreshold: comp.MaxSize,
					ActualSizeKB:      size.RawKB(),
					OverflowKB:        float64(cr.OverflowBytes) / schema.KibiByte,
				})
			}
			if cr.Failed() {
				r.hasWarnings = true
			}
		}
	}

	if err := r.baseline.Persist(current); err != nil {
		return nil, err
	}

	return &schema.CheckRunResult{
		Results:         r.results,
		Failures:        r.failures,
		HasWarnings:     r.hasWarnings,
		TotalComponents: len(r.cfg.Components),
	}, nil
}

// buildVariants derives the keyed variants to evaluate for one component.
// Every component gets at least the primary variant; folder-scan components
// additionally get primary+runtime when companion files exist, and a full
// bundle variant when any remaining files exist. Variants are never merged
// into one number.
func buildVariants(cfg *contract.Config, comp *contract.ComponentConfig, set *FileSet) []variant {
	if !comp.FolderScan() {
		return []variant{{Key: comp.Name, Label: schema.PrimaryVariant, Files: set.Primary}}
	}

	variants := []variant{{
		Key:   comp.Name + "/" + cfg.EntryFilename,
		Label: schema.PrimaryVariant,
		Files: set.Primary,
	}}

	if len(set.Runtime) > 0 {
		files := append(append([]string{}, set.Primary...), set.Runtime...)
		variants = append(variants, variant{
			Key:   comp.Name + "/" + cfg.RuntimeFilename,
			Label: schema.RuntimeVariant,
			Files: files,
		})
	}

	if len(set.Other) > 0 {
		variants = append(variants, variant{
			Key:   comp.Name,
			Label: schema.FullVariant,
			Files: set.All(),
		})
	}

	return variants
}

// ExecuteSizeCheck runs the check command for CI/CD gating. It renders the
// report, records the run to the history store when one is configured, emits
// the failure-report artifact on violations, and exits non-zero when any
// component tripped a threshold.
func ExecuteSizeCheck(ctx context.Context, cfg *contract.Config, store history.Store) error {
	start := time.Now()

	runner := NewRunner(cfg, contract.NewOSFileSystem())
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	if err := outwriter.WriteCheckResults(result, cfg, duration); err != nil {
		return err
	}

	if store != nil {
		params := map[string]any{
			"components":   len(cfg.Components),
			"gzip":         cfg.Compression.Gzip,
			"brotli":       cfg.Compression.Brotli,
			"workers":      cfg.Workers,
			"baselineFile": cfg.BaselineFile,
		}
		if _, err := store.RecordRun(start, duration, result, params); err != nil {
			contract.LogWarn("Failed to record run history", err)
		}
	}

	if result.HasWarnings {
		if err := writeFailureReport(cfg.ReportFile, result.Failures); err != nil {
			return err
		}
		fmt.Printf("%d violation(s) found\n", len(result.Failures))
		os.Exit(1)
	}
	return nil
}

// writeFailureReport emits the accumulated failure records as a JSON artifact.
func writeFailureReport(path string, failures []schema.FailureRecord) error {
	data, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode failure report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write failure report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote failure report to %s\n", path)
	return nil
}
