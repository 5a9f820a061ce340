package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colguard/app"
	"colguard/domain/anomaly"
	"colguard/internal/profiling"
)

func sampleReport() *app.RunReport {
	return &app.RunReport{
		Summary: &anomaly.Summary{
			RunID:    "run-1",
			Dataset:  "orders",
			RowCount: 100,
			Entries: []anomaly.SummaryEntry{
				{
					Column:            "amount",
					Strategy:          anomaly.StrategyZScore,
					AnomalyCount:      2,
					AnomalyPercentage: 2.0,
					Status:            anomaly.StatusCompleted,
					SampleSize:        100,
				},
				{
					Column:    "flat",
					Strategy:  anomaly.StrategyIQR,
					Status:    anomaly.StatusFailed,
					ErrorKind: "data_insufficient",
				},
			},
			Fingerprint: "abc123",
		},
		Profiles: map[string]profiling.Profile{
			"amount": {SampleSize: 100, Mean: 50, StdDev: 5, Median: 50, Q1: 46, Q3: 54, LikelyNormal: true},
		},
	}
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(sampleReport())

	assert.Contains(t, md, "# Anomaly detection report")
	assert.Contains(t, md, "- Dataset: `orders`")
	assert.Contains(t, md, "- Fingerprint: `abc123`")
	assert.Contains(t, md, "| amount | zscore | 2 | 2.00% | completed |")
	assert.Contains(t, md, "## Column profiles")
	assert.Contains(t, md, "| likely |")
	assert.Contains(t, md, "## Failures")
	assert.Contains(t, md, "- `flat` / `iqr`: data_insufficient")
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	r := sampleReport()
	r.Summary.Entries = r.Summary.Entries[:1]
	r.Profiles = nil

	md := Markdown(r)
	assert.NotContains(t, md, "## Column profiles")
	assert.NotContains(t, md, "## Failures")
}

func TestHTMLRendersTables(t *testing.T) {
	out := HTML(sampleReport())
	require.NotEmpty(t, out)

	html := string(out)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "amount")
}
