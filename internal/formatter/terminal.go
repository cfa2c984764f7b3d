package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/synopsis/internal/emoji"
	"github.com/yildizm/synopsis/internal/remote"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts  *termfmt.TerminalOptions
	width int
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts, width: textWidth}
}

func (f *terminalFormatter) FormatSummary(report *SummaryReport) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no summary to format")
	}

	var b strings.Builder

	f.writeHeader(&b, "Article Summary")

	fmt.Fprintf(&b, "%s Summary\n", symbol("summary", f.opts))
	b.WriteString(wrapParagraphs(report.Result.Summary, f.width) + "\n\n")

	if report.Result.HasStats() {
		f.writeStatistics(&b, report.Result.Stats)
	}

	f.writeInput(&b, report)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatDemo(demo *remote.DemoResult) ([]byte, error) {
	if demo == nil {
		return nil, fmt.Errorf("no demo article to format")
	}

	var b strings.Builder

	f.writeHeader(&b, "Demo Article")

	fmt.Fprintf(&b, "%s Document\n", symbol("article", f.opts))
	b.WriteString(wrapParagraphs(demo.Document, f.width) + "\n\n")

	if demo.HasReference() {
		fmt.Fprintf(&b, "%s Reference Summary\n", symbol("reference", f.opts))
		b.WriteString(wrapParagraphs(demo.ReferenceSummary, f.width) + "\n")
	}

	return []byte(b.String()), nil
}

// writeStatistics writes the compression statistics as a tree
func (f *terminalFormatter) writeStatistics(b *strings.Builder, stats *remote.SummaryStats) {
	fmt.Fprintf(b, "%s Statistics\n", symbol("statistics", f.opts))

	bar := termfmt.CreateConfidenceBar(keptRatio(stats), f.opts)

	items := []termfmt.TreeItem{
		{Label: "Input Words", Value: formatNumber(stats.InputWords)},
		{Label: "Summary Words", Value: formatNumber(stats.SummaryWords)},
		{
			Label: "Compression",
			Value: stats.CompressionRate,
			Children: []termfmt.TreeItem{
				{Label: bar + " kept", Value: fmt.Sprintf("%.0f%%", keptRatio(stats)*100)},
			},
			Last: true,
		},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeInput writes where the article came from and its size
func (f *terminalFormatter) writeInput(b *strings.Builder, report *SummaryReport) {
	fmt.Fprintf(b, "%s Input\n", symbol("article", f.opts))

	source := report.Source
	if source == "" {
		source = "-"
	}

	items := []termfmt.TreeItem{
		{Label: "Source", Value: source},
		{Label: "Words", Value: formatNumber(report.Input.Words)},
		{Label: "Characters", Value: formatNumber(report.Input.Chars), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder, title string) {
	titleLen := len(title)

	b.WriteString("╔" + strings.Repeat("═", titleLen+2) + "╗\n")
	b.WriteString("║ " + title + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", titleLen+2) + "╝\n\n")
}
