package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/remote"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// SummaryOutput is the JSON document for a summarization
type SummaryOutput struct {
	Type    string               `json:"type"`
	Source  string               `json:"source,omitempty"`
	Input   article.Metrics      `json:"input"`
	Summary string               `json:"summary"`
	Stats   *remote.SummaryStats `json:"stats,omitempty"`
}

// DemoOutput is the JSON document for a demo article
type DemoOutput struct {
	Type             string          `json:"type"`
	Document         string          `json:"document"`
	Metrics          article.Metrics `json:"metrics"`
	ReferenceSummary string          `json:"reference_summary,omitempty"`
}

func (f *jsonFormatter) FormatSummary(report *SummaryReport) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no summary to format")
	}

	output := &SummaryOutput{
		Type:    "summary",
		Source:  report.Source,
		Input:   report.Input,
		Summary: report.Result.Summary,
		Stats:   report.Result.Stats,
	}

	return json.MarshalIndent(output, "", "  ")
}

func (f *jsonFormatter) FormatDemo(demo *remote.DemoResult) ([]byte, error) {
	if demo == nil {
		return nil, fmt.Errorf("no demo article to format")
	}

	output := &DemoOutput{
		Type:             "demo",
		Document:         demo.Document,
		Metrics:          article.Measure(demo.Document),
		ReferenceSummary: demo.ReferenceSummary,
	}

	return json.MarshalIndent(output, "", "  ")
}
