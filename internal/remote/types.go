package remote

// SummarizeRequest is the body of POST /summarize
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeResponse is the raw body returned by POST /summarize. Either
// Summary or Error is set.
type SummarizeResponse struct {
	Summary string        `json:"summary,omitempty"`
	Stats   *SummaryStats `json:"stats,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// DemoResponse is the raw body returned by GET /demo
type DemoResponse struct {
	Document         string `json:"document,omitempty"`
	ReferenceSummary string `json:"reference_summary,omitempty"`
	Error            string `json:"error,omitempty"`
}

// SummaryStats holds the compression statistics computed by the service
type SummaryStats struct {
	InputWords      int    `json:"input_words"`
	SummaryWords    int    `json:"summary_words"`
	CompressionRate string `json:"compression_rate"`
}

// SummaryResult is a successful summarization
type SummaryResult struct {
	Summary string        `json:"summary"`
	Stats   *SummaryStats `json:"stats,omitempty"`
}

// HasStats reports whether the service sent statistics
func (r *SummaryResult) HasStats() bool {
	return r != nil && r.Stats != nil
}

// DemoResult is a successfully loaded sample document
type DemoResult struct {
	Document         string `json:"document"`
	ReferenceSummary string `json:"reference_summary,omitempty"`
}

// HasReference reports whether a reference summary came with the document
func (r *DemoResult) HasReference() bool {
	return r != nil && r.ReferenceSummary != ""
}
