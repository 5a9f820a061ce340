// Package report renders run summaries as markdown and HTML.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"colguard/app"
	"colguard/domain/anomaly"
)

// Markdown renders the run report as a markdown document
func Markdown(report *app.RunReport) string {
	s := report.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "# Anomaly detection report\n\n")
	fmt.Fprintf(&b, "- Dataset: `%s`\n", s.Dataset)
	fmt.Fprintf(&b, "- Run: `%s`\n", s.RunID)
	fmt.Fprintf(&b, "- Rows: %d\n", s.RowCount)
	fmt.Fprintf(&b, "- Fingerprint: `%s`\n\n", s.Fingerprint)

	b.WriteString("## Results\n\n")
	b.WriteString("| Column | Strategy | Anomalies | Percent | Status | Error |\n")
	b.WriteString("|---|---|---:|---:|---|---|\n")
	for _, e := range s.Entries {
		fmt.Fprintf(&b, "| %s | %s | %d | %.2f%% | %s | %s |\n",
			e.Column, e.Strategy, e.AnomalyCount, e.AnomalyPercentage, e.Status, e.ErrorKind)
	}

	if len(report.Profiles) > 0 {
		b.WriteString("\n## Column profiles\n\n")
		b.WriteString("| Column | N | Mean | StdDev | Median | Q1 | Q3 | Skew | Normal? |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|---|\n")

		names := make([]string, 0, len(report.Profiles))
		for name := range report.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := report.Profiles[name]
			fmt.Fprintf(&b, "| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.3f | %s |\n",
				name, p.SampleSize, p.Mean, p.StdDev, p.Median, p.Q1, p.Q3, p.Skewness,
				normalityLabel(p.LikelyNormal))
		}
	}

	if failed := failedEntries(s); len(failed) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, e := range failed {
			fmt.Fprintf(&b, "- `%s` / `%s`: %s\n", e.Column, e.Strategy, e.ErrorKind)
		}
	}
	return b.String()
}

// HTML renders the run report as a standalone HTML fragment
func HTML(report *app.RunReport) []byte {
	md := []byte(Markdown(report))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func failedEntries(s *anomaly.Summary) []anomaly.SummaryEntry {
	var failed []anomaly.SummaryEntry
	for _, e := range s.Entries {
		if e.Status == anomaly.StatusFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

func normalityLabel(likely bool) string {
	if likely {
		return "likely"
	}
	return "unlikely"
}
