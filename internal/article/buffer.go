// Package article holds the article text being edited and the loaders that
// fill it from files, stdin, or the web.
package article

import (
	"strings"
	"unicode/utf8"
)

// Metrics are derived from the buffer text on every change
type Metrics struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// Buffer stores the raw input text verbatim together with its metrics
type Buffer struct {
	text    string
	metrics Metrics
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// SetText stores raw without trimming and recomputes metrics
func (b *Buffer) SetText(raw string) {
	b.text = raw
	b.metrics = Measure(raw)
}

// Text returns the stored text
func (b *Buffer) Text() string {
	return b.text
}

// Clear empties the buffer
func (b *Buffer) Clear() {
	b.SetText("")
}

// Metrics returns the metrics for the current text
func (b *Buffer) Metrics() Metrics {
	return b.metrics
}

// IsBlank reports whether the text is empty after trimming whitespace
func (b *Buffer) IsBlank() bool {
	return strings.TrimSpace(b.text) == ""
}

// Measure computes metrics for s
func Measure(s string) Metrics {
	return Metrics{
		Words: CountWords(s),
		Chars: CountChars(s),
	}
}

// CountWords counts maximal runs of non-whitespace characters
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CountChars counts characters (runes) in s
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}
