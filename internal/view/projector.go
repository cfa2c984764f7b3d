// Package view maps session state onto the regions the screen shows.
package view

import (
	"github.com/yildizm/synopsis/internal/remote"
	"github.com/yildizm/synopsis/internal/session"
)

// Button labels
const (
	SummarizeLabel     = "Summarize"
	SummarizeBusyLabel = "Processing..."
	DemoLabel          = "Load Article"
	DemoBusyLabel      = "Loading..."
)

// Projection lists what is visible and the content of each region
type Projection struct {
	ShowSummary     bool
	ShowStats       bool
	ShowReference   bool
	ShowError       bool
	ShowPlaceholder bool
	ShowSpinner     bool

	SummarizeLabel   string
	SummarizeEnabled bool
	DemoLabel        string
	DemoEnabled      bool

	Summary      string
	Stats        remote.SummaryStats
	Reference    string
	ErrorMessage string

	Words int
	Chars int
}

// Project computes the projection for snap. An active error hides the
// summary and its stats; the reference summary stays visible because it
// belongs to the loaded article.
func Project(snap session.Snapshot) Projection {
	p := Projection{
		SummarizeLabel:   SummarizeLabel,
		SummarizeEnabled: !snap.Summarizing,
		DemoLabel:        DemoLabel,
		DemoEnabled:      !snap.LoadingDemo,
		ShowSpinner:      snap.Summarizing,
		ShowPlaceholder:  snap.ShowPlaceholder,
		Words:            snap.Metrics.Words,
		Chars:            snap.Metrics.Chars,
	}

	if snap.Summarizing {
		p.SummarizeLabel = SummarizeBusyLabel
	}
	if snap.LoadingDemo {
		p.DemoLabel = DemoBusyLabel
	}

	if snap.Error != nil {
		p.ShowError = true
		p.ErrorMessage = snap.Error.Message
	}

	if snap.Summary != nil && snap.Summary.Summary != "" && !p.ShowError {
		p.ShowSummary = true
		p.Summary = snap.Summary.Summary
		if snap.Summary.Stats != nil {
			p.ShowStats = true
			p.Stats = *snap.Summary.Stats
		}
	}

	if snap.Reference != "" {
		p.ShowReference = true
		p.Reference = snap.Reference
	}

	return p
}
