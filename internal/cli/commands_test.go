package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yildizm/synopsis/internal/formatter"
	"github.com/yildizm/synopsis/internal/remote"
	"github.com/yildizm/synopsis/internal/session"
)

// writeTestConfig writes a config pointing at baseURL and returns its path
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "synopsis.yaml")
	content := fmt.Sprintf(`server:
  base_url: %q
  timeout: 5s
log:
  file: %q
`, baseURL, filepath.Join(dir, "synopsis.log"))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func writeArticle(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "article.txt")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("Failed to write article: %v", err)
	}
	return path
}

// executeCommand runs the root command with args and returns its output
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	defer func() { globalConfig = nil }()

	root := NewRootCommand("1.2.3", "abc123", "2024-01-01")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// summarizeServer answers /summarize with the given body and records the text sent
type summarizeServer struct {
	*httptest.Server
	calls    atomic.Int32
	lastText atomic.Value
}

func newSummarizeServer(t *testing.T, body string) *summarizeServer {
	t.Helper()
	s := &summarizeServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/summarize":
			s.calls.Add(1)
			var req remote.SummarizeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("Failed to decode request: %v", err)
			}
			s.lastText.Store(req.Text)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		case "/article":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("Article served over HTTP."))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

const foxResponse = `{"summary": "A fox runs.", "stats": {"input_words": 4, "summary_words": 3, "compression_rate": "25%"}}`

func TestSummarizeCommand_JSON(t *testing.T) {
	server := newSummarizeServer(t, foxResponse)
	cfg := writeTestConfig(t, server.URL)
	path := writeArticle(t, "  The quick brown fox.\n")

	out, err := executeCommand(t, "", "summarize", path, "--config", cfg, "-o", "json")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if got := server.lastText.Load(); got != "The quick brown fox." {
		t.Errorf("Expected trimmed text sent, got %q", got)
	}

	var decoded formatter.SummaryOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.Summary != "A fox runs." || decoded.Stats == nil || decoded.Stats.CompressionRate != "25%" {
		t.Errorf("Unexpected output: %+v", decoded)
	}
	if decoded.Source != path {
		t.Errorf("Expected source %s, got %s", path, decoded.Source)
	}
}

func TestSummarizeCommand_Stdin(t *testing.T) {
	server := newSummarizeServer(t, foxResponse)
	cfg := writeTestConfig(t, server.URL)

	out, err := executeCommand(t, "The quick brown fox.", "summarize", "--config", cfg, "--no-color", "--no-emoji")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if !strings.Contains(out, "A fox runs.") || !strings.Contains(out, "stdin") {
		t.Errorf("Expected text report for stdin\n%s", out)
	}
}

func TestSummarizeCommand_URL(t *testing.T) {
	server := newSummarizeServer(t, foxResponse)
	cfg := writeTestConfig(t, server.URL)

	_, err := executeCommand(t, "", "summarize", "--url", server.URL+"/article", "--config", cfg, "-o", "markdown")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if got := server.lastText.Load(); got != "Article served over HTTP." {
		t.Errorf("Expected fetched article sent, got %q", got)
	}
}

func TestSummarizeCommand_BlankInput(t *testing.T) {
	server := newSummarizeServer(t, foxResponse)
	cfg := writeTestConfig(t, server.URL)

	_, err := executeCommand(t, "   \n\t", "summarize", "--config", cfg)
	if err == nil || err.Error() != session.ValidationMessage {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if server.calls.Load() != 0 {
		t.Error("Expected no request for blank input")
	}
}

func TestSummarizeCommand_ServerError(t *testing.T) {
	server := newSummarizeServer(t, `{"error": "Text too short"}`)
	cfg := writeTestConfig(t, server.URL)

	_, err := executeCommand(t, "tiny", "summarize", "--config", cfg)
	if err == nil || err.Error() != "Text too short" {
		t.Fatalf("Expected server message, got %v", err)
	}
}

func TestSummarizeCommand_OutputFile(t *testing.T) {
	server := newSummarizeServer(t, foxResponse)
	cfg := writeTestConfig(t, server.URL)
	target := filepath.Join(t.TempDir(), "out", "summary.md")

	out, err := executeCommand(t, "The quick brown fox.", "summarize", "--config", cfg, "-o", "markdown", "--output-file", target)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected nothing on stdout, got %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), "# Article Summary") {
		t.Errorf("Expected markdown report in file\n%s", data)
	}
}

func TestSummarizeCommand_RejectsFileAndURL(t *testing.T) {
	cfg := writeTestConfig(t, "http://localhost:1")
	path := writeArticle(t, "text")

	_, err := executeCommand(t, "", "summarize", path, "--url", "http://localhost:1/a", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "both a file and --url") {
		t.Fatalf("Expected conflicting source error, got %v", err)
	}
}

func TestDemoCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo" || r.Method != http.MethodGet {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"document": "A sample article.", "reference_summary": "Sample."}`))
	}))
	defer server.Close()

	out, err := executeCommand(t, "", "demo", "--server", server.URL, "--config", writeTestConfig(t, "http://localhost:1"), "-o", "markdown")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if !strings.Contains(out, "A sample article.") || !strings.Contains(out, "> Sample.") {
		t.Errorf("Expected document and reference\n%s", out)
	}
}

func TestDemoCommand_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := executeCommand(t, "", "demo", "--config", writeTestConfig(t, server.URL))
	if err == nil || err.Error() != remote.FallbackDemoMessage {
		t.Fatalf("Expected fallback message, got %v", err)
	}
}

func TestTUICommand_WatchRequiresFile(t *testing.T) {
	_, err := executeCommand(t, "", "tui", "--watch", "--config", writeTestConfig(t, "http://localhost:1"))
	if err == nil || !strings.Contains(err.Error(), "--watch requires --file") {
		t.Fatalf("Expected watch error, got %v", err)
	}
}

func TestInvalidServerFlag(t *testing.T) {
	_, err := executeCommand(t, "text", "summarize", "--server", "ftp://example.com", "--config", writeTestConfig(t, "http://localhost:1"))
	if err == nil || !strings.Contains(err.Error(), "invalid server base_url") {
		t.Fatalf("Expected base_url validation error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "Synopsis 1.2.3 (abc123) built on 2024-01-01") {
		t.Errorf("Unexpected version output\n%s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "synopsis.yaml")

	out, err := executeCommand(t, "", "config", "init", "--path", path, "--no-emoji")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("Expected created path in output\n%s", out)
	}

	if _, err := executeCommand(t, "", "config", "init", "--path", path); err == nil {
		t.Error("Expected error when config exists without --force")
	}

	out, err = executeCommand(t, "", "config", "validate", "--config", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") {
		t.Errorf("Expected valid config\n%s", out)
	}
}

func TestConfigShowJSON(t *testing.T) {
	cfg := writeTestConfig(t, "https://summarizer.example.com")

	out, err := executeCommand(t, "", "config", "show", "--config", cfg, "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out)
	}
	server, _ := decoded["server"].(map[string]interface{})
	if server["base_url"] != "https://summarizer.example.com" {
		t.Errorf("Expected base_url from file, got %v", server["base_url"])
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "json"},
		{format: "markdown"},
		{format: "md"},
		{format: "text"},
		{format: "terminal"},
		{format: ""},
		{format: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := getFormatter(tt.format, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("getFormatter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if !tt.wantErr && f == nil {
				t.Error("Expected a formatter")
			}
		})
	}
}
