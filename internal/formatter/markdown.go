package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/remote"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) FormatSummary(report *SummaryReport) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no summary to format")
	}

	var b strings.Builder

	b.WriteString("# Article Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary\n\n")
	b.WriteString(quote(report.Result.Summary) + "\n\n")

	if report.Result.HasStats() {
		f.writeStatsTable(&b, report.Result.Stats)
	}

	b.WriteString("## Input\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "| Source | `%s` |\n", report.Source)
	}
	fmt.Fprintf(&b, "| Words | %s |\n", formatNumber(report.Input.Words))
	fmt.Fprintf(&b, "| Characters | %s |\n", formatNumber(report.Input.Chars))

	return []byte(b.String()), nil
}

func (f *markdownFormatter) FormatDemo(demo *remote.DemoResult) ([]byte, error) {
	if demo == nil {
		return nil, fmt.Errorf("no demo article to format")
	}

	var b strings.Builder
	metrics := article.Measure(demo.Document)

	b.WriteString("# Demo Article\n\n")
	fmt.Fprintf(&b, "%s words, %s characters\n\n", formatNumber(metrics.Words), formatNumber(metrics.Chars))

	b.WriteString("## Document\n\n")
	b.WriteString(strings.TrimSpace(demo.Document) + "\n")

	if demo.HasReference() {
		b.WriteString("\n## Reference Summary\n\n")
		b.WriteString(quote(demo.ReferenceSummary) + "\n")
	}

	return []byte(b.String()), nil
}

// writeStatsTable writes the compression statistics table
func (f *markdownFormatter) writeStatsTable(b *strings.Builder, stats *remote.SummaryStats) {
	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Input Words | %s |\n", formatNumber(stats.InputWords))
	fmt.Fprintf(b, "| Summary Words | %s |\n", formatNumber(stats.SummaryWords))
	fmt.Fprintf(b, "| Compression Rate | %s |\n\n", stats.CompressionRate)
}

// quote renders text as a Markdown block quote
func quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
