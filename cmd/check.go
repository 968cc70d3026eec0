package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sizegate/sizegate/core"
	"github.com/sizegate/sizegate/internal/contract"
)

// checkCmd focused on CI/CD bundle size enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce bundle size budgets for CI/CD pipelines (fails build on violations)",
	Long: `Measure every configured component bundle and enforce its size budget.

Designed specifically for CI/CD integration - fails with non-zero exit code when
a component's raw size exceeds its maxSize cap, or when a component grows past
its warnOnIncrease limit relative to the persisted baseline.

Every run refreshes the baseline snapshot, so the next run compares against the
sizes just measured - even when this run failed.

Use cases:
- Pull request gates - block merges that bloat a bundle
- Release validation - ensure no component outgrew its budget
- Size regression tracking - catch gradual growth automatically

Examples:
  # Check all components against sizegate.config.json
  sizegate check

  # Check with a custom config and baseline location
  sizegate check --config configs/sizegate.config.json --baselineFile .cache/baseline.json

  # Machine-readable report for further processing
  sizegate check --output json --output-file sizes.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Threshold violations exit inside ExecuteSizeCheck
		if err := core.ExecuteSizeCheck(rootCtx, cfg, historyStore); err != nil {
			contract.LogFatal("Size check failed", err)
		}
	},
}
