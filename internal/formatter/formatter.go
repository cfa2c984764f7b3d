package formatter

import (
	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/remote"
)

// SummaryReport is a completed summarization together with its input
type SummaryReport struct {
	Source string
	Input  article.Metrics
	Result *remote.SummaryResult
}

// Formatter defines the interface for output formatting
type Formatter interface {
	FormatSummary(report *SummaryReport) ([]byte, error)
	FormatDemo(demo *remote.DemoResult) ([]byte, error)
}
