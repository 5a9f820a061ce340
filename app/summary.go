package app

import (
	"fmt"
	"strings"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// BuildSummary projects pair states into the run summary. Pure aggregation:
// no score is recomputed, and exactly one entry is emitted per configured
// pair whether it completed or failed.
func BuildSummary(runID core.RunID, dataset string, rowCount int, states []*PairState) *anomaly.Summary {
	entries := make([]anomaly.SummaryEntry, len(states))
	for i, st := range states {
		entry := anomaly.SummaryEntry{
			Column:   st.Spec.Column,
			Strategy: st.Spec.Strategy,
			Status:   st.Status,
		}
		switch st.Status {
		case anomaly.StatusCompleted:
			entry.AnomalyCount = st.Result.AnomalyCount
			entry.SampleSize = st.Result.Fitted
			if rowCount > 0 {
				entry.AnomalyPercentage = 100 * float64(st.Result.AnomalyCount) / float64(rowCount)
			}
		case anomaly.StatusFailed:
			entry.ErrorKind = core.ErrorKind(st.Err)
		}
		entries[i] = entry
	}

	return &anomaly.Summary{
		RunID:    runID,
		Dataset:  dataset,
		RowCount: rowCount,
		Entries:  entries,
	}
}

// FormatSummary renders the summary as an aligned text table for terminals
func FormatSummary(summary *anomaly.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %-18s %10s %10s  %-10s %s\n",
		"COLUMN", "STRATEGY", "ANOMALIES", "PERCENT", "STATUS", "ERROR")
	for _, e := range summary.Entries {
		fmt.Fprintf(&b, "%-24s %-18s %10d %9.2f%%  %-10s %s\n",
			e.Column, e.Strategy, e.AnomalyCount, e.AnomalyPercentage, e.Status, e.ErrorKind)
	}
	fmt.Fprintf(&b, "\n%d rows, %d pairs, %d anomalies flagged\n",
		summary.RowCount, len(summary.Entries), summary.TotalAnomalies())
	return b.String()
}
