package formatter

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/yildizm/synopsis/internal/emoji"
	"github.com/yildizm/synopsis/internal/remote"
	"github.com/yildizm/go-termfmt"
)

// textWidth is the column summaries are wrapped at in text output
const textWidth = 80

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// keptRatio is the share of input words kept in the summary, clamped to [0,1]
func keptRatio(stats *remote.SummaryStats) float64 {
	if stats == nil || stats.InputWords <= 0 {
		return 0
	}
	ratio := float64(stats.SummaryWords) / float64(stats.InputWords)
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}

// symbol returns the termfmt emoji for key, falling back to the local table
func symbol(key string, opts *termfmt.TerminalOptions) string {
	if s := termfmt.GetEmoji(key, opts); s != "" {
		return s
	}
	return emoji.GetEmoji(key)
}

// wrapParagraphs wraps each paragraph of text to width columns
func wrapParagraphs(text string, width int) string {
	paragraphs := strings.Split(strings.TrimSpace(text), "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = wordwrap.String(strings.TrimSpace(p), width)
	}
	return strings.Join(paragraphs, "\n\n")
}
