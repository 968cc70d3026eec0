package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sizegate/sizegate/schema"
)

// PrintStatus prints history store status information.
func PrintStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}

// PrintRecentRuns prints a one-line summary per run, newest first.
func PrintRecentRuns(runs []schema.RunRecord) {
	if len(runs) == 0 {
		fmt.Println("No check runs recorded yet")
		return
	}
	for _, r := range runs {
		outcome := "PASS"
		if !r.Passed {
			outcome = "FAIL"
		}
		fmt.Printf("#%d  %s  %s  %d result(s)  %v\n",
			r.RunID,
			r.StartTime.Format("2006-01-02 15:04:05"),
			outcome,
			r.TotalResults,
			time.Duration(r.DurationMs)*time.Millisecond)
	}
}

// RunSummary is the JSON shape used when surfacing runs over MCP.
type RunSummary struct {
	RunID        int64          `json:"runId"`
	StartTime    time.Time      `json:"startTime"`
	DurationMs   int64          `json:"durationMs"`
	TotalResults int            `json:"totalResults"`
	Passed       bool           `json:"passed"`
	ConfigParams map[string]any `json:"configParams,omitempty"`
}

// SummarizeRuns converts run records to their JSON summary shape, decoding
// the stored config params back into a map.
func SummarizeRuns(runs []schema.RunRecord) []RunSummary {
	summaries := make([]RunSummary, len(runs))
	for i, r := range runs {
		s := RunSummary{
			RunID:        r.RunID,
			StartTime:    r.StartTime,
			DurationMs:   r.DurationMs,
			TotalResults: r.TotalResults,
			Passed:       r.Passed,
		}
		if r.ConfigParams != "" {
			var params map[string]any
			if err := json.Unmarshal([]byte(r.ConfigParams), &params); err == nil {
				s.ConfigParams = params
			}
		}
		summaries[i] = s
	}
	return summaries
}
