package article

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// DefaultMaxBytes caps the size of a loaded article
const DefaultMaxBytes = 2 << 20

// textBlocks are the elements whose text makes up an extracted article
const textBlocks = "h1,h2,h3,h4,p,li,blockquote,pre"

// Document is an article loaded from outside the editor
type Document struct {
	Title  string
	Text   string
	Source string
}

// LoadFile reads a plain text article from disk
func LoadFile(path string, maxBytes int64) (*Document, error) {
	if err := ValidateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	cleanPath := filepath.Clean(path)

	// #nosec G304 - path is validated above
	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	text, err := readLimited(file, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleanPath, err)
	}

	return &Document{
		Title:  filepath.Base(cleanPath),
		Text:   text,
		Source: cleanPath,
	}, nil
}

// LoadReader reads a plain text article from r, typically stdin
func LoadReader(r io.Reader, maxBytes int64) (*Document, error) {
	text, err := readLimited(r, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return &Document{Text: text, Source: "stdin"}, nil
}

// ValidateFilePath checks that path names a readable regular file
func ValidateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

func readLimited(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("article exceeds %d bytes", maxBytes)
	}
	return string(data), nil
}

// Fetcher downloads web pages and extracts their readable text
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewFetcher creates a fetcher with the given timeout and size cap
func NewFetcher(timeout time.Duration, maxBytes int64, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		maxBytes:  maxBytes,
		userAgent: userAgent,
	}
}

// Fetch downloads rawURL. HTML pages are reduced to their main content;
// text/plain bodies are returned as is.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL: scheme must be http or https")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := readLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		return &Document{Text: body, Source: pageURL.String()}, nil
	}

	return ExtractHTML(body, pageURL)
}

// ExtractHTML finds the main article in an HTML page and returns its text
// as paragraphs separated by blank lines.
func ExtractHTML(html string, pageURL *url.URL) (*Document, error) {
	parser := readability.NewParser()
	parsed, err := parser.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	paragraphs, err := collectParagraphs(parsed.Content)
	if err != nil {
		return nil, err
	}

	// readability can discard short pages entirely; fall back to the raw markup
	if len(paragraphs) == 0 {
		if paragraphs, err = collectParagraphs(html); err != nil {
			return nil, err
		}
	}

	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no readable text found")
	}

	source := ""
	if pageURL != nil {
		source = pageURL.String()
	}

	return &Document{
		Title:  normalizeText(parsed.Title),
		Text:   strings.Join(paragraphs, "\n\n"),
		Source: source,
	}, nil
}

func collectParagraphs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article content: %w", err)
	}

	var paragraphs []string
	doc.Find(textBlocks).Each(func(_ int, s *goquery.Selection) {
		// nested blocks (li > p) are collected by the innermost element only
		if s.Find(textBlocks).Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		doc.Find("script,style,noscript").Remove()
		if text := normalizeText(doc.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return paragraphs, nil
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
