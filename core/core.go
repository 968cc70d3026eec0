// Package core has the size evaluation engine: file set resolution, size
// calculation, threshold evaluation, baseline persistence and the per-run
// orchestrator.
package core
