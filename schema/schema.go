// Package schema has configs, models and constants for all parts of sizegate.
package schema

// BaselineMap maps a result key to the raw size in bytes recorded by the
// previous run. It is a point-in-time snapshot, overwritten in full at the
// end of every run.
type BaselineMap map[string]int64
