package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	config := DefaultConfig()
	config.BaseURL = baseURL
	config.Timeout = 5 * time.Second

	client, err := New(config, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "empty base URL", config: &Config{Timeout: time.Second}},
		{name: "zero timeout", config: &Config{BaseURL: "http://localhost:5000"}},
		{name: "unsupported scheme", config: &Config{BaseURL: "ftp://example.com", Timeout: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config, nil); err == nil {
				t.Error("Expected error for invalid config")
			}
		})
	}
}

func TestClient_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize" {
			t.Errorf("Expected path '/summarize', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got '%s'", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID header")
		}

		var req SummarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Text != "The quick brown fox." {
			t.Errorf("Expected text to be sent verbatim, got '%s'", req.Text)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary": "A fox runs.", "stats": {"input_words": 4, "summary_words": 3, "compression_rate": "25%"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Summarize(context.Background(), "The quick brown fox.")
	if err != nil {
		t.Fatalf("Failed to summarize: %v", err)
	}

	if result.Summary != "A fox runs." {
		t.Errorf("Expected summary 'A fox runs.', got '%s'", result.Summary)
	}
	if !result.HasStats() {
		t.Fatal("Expected stats to be present")
	}
	if result.Stats.InputWords != 4 {
		t.Errorf("Expected input words 4, got %d", result.Stats.InputWords)
	}
	if result.Stats.SummaryWords != 3 {
		t.Errorf("Expected summary words 3, got %d", result.Stats.SummaryWords)
	}
	if result.Stats.CompressionRate != "25%" {
		t.Errorf("Expected compression rate '25%%', got '%s'", result.Stats.CompressionRate)
	}
}

func TestClient_SummarizeWithoutStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary": "Short."}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Summarize(context.Background(), "text")
	if err != nil {
		t.Fatalf("Failed to summarize: %v", err)
	}
	if result.HasStats() {
		t.Error("Expected no stats")
	}
}

func TestClient_SummarizeServerError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{name: "error message passed through", status: http.StatusBadRequest, body: `{"error": "Text too long"}`, expected: "Text too long"},
		{name: "error on 200", status: http.StatusOK, body: `{"error": "model busy"}`, expected: "model busy"},
		{name: "no message uses fallback", status: http.StatusInternalServerError, body: `{}`, expected: FallbackSummarizeMessage},
		{name: "empty summary uses fallback", status: http.StatusOK, body: `{"summary": ""}`, expected: FallbackSummarizeMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			result, err := client.Summarize(context.Background(), "text")
			if err == nil {
				t.Fatalf("Expected error, got result %+v", result)
			}

			re, ok := AsError(err)
			if !ok {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if re.Kind != KindRemote {
				t.Errorf("Expected kind %s, got %s", KindRemote, re.Kind)
			}
			if re.Message != tt.expected {
				t.Errorf("Expected message '%s', got '%s'", tt.expected, re.Message)
			}
			if re.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, re.StatusCode)
			}
		})
	}
}

func TestClient_SummarizeInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Summarize(context.Background(), "text")
	if !IsTransportError(err) {
		t.Fatalf("Expected transport error, got %v", err)
	}
	if !strings.HasPrefix(MessageOf(err, ""), NetworkErrorPrefix) {
		t.Errorf("Expected message to start with '%s', got '%s'", NetworkErrorPrefix, MessageOf(err, ""))
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL)

	_, err := client.FetchDemo(context.Background())
	if err == nil {
		t.Fatal("Expected error for closed server")
	}

	re, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if re.Kind != KindTransport {
		t.Errorf("Expected kind %s, got %s", KindTransport, re.Kind)
	}
	if !strings.HasPrefix(re.Message, NetworkErrorPrefix) {
		t.Errorf("Expected message to start with '%s', got '%s'", NetworkErrorPrefix, re.Message)
	}
	if re.Unwrap() == nil {
		t.Error("Expected underlying cause to be kept")
	}
	if !errors.Is(err, &Error{Kind: KindTransport}) {
		t.Error("Expected errors.Is to match transport kind")
	}
}

func TestClient_FetchDemo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo" {
			t.Errorf("Expected path '/demo', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET method, got '%s'", r.Method)
		}
		_ = json.NewEncoder(w).Encode(DemoResponse{
			Document:         "Full article body.",
			ReferenceSummary: "Body.",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.FetchDemo(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch demo: %v", err)
	}
	if result.Document != "Full article body." {
		t.Errorf("Expected document, got '%s'", result.Document)
	}
	if !result.HasReference() || result.ReferenceSummary != "Body." {
		t.Errorf("Expected reference summary 'Body.', got '%s'", result.ReferenceSummary)
	}
}

func TestClient_FetchDemoFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "dataset unavailable"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FetchDemo(context.Background())
	if !IsRemoteError(err) {
		t.Fatalf("Expected remote error, got %v", err)
	}
	if msg := MessageOf(err, FallbackDemoMessage); msg != "dataset unavailable" {
		t.Errorf("Expected 'dataset unavailable', got '%s'", msg)
	}
}

func TestClient_SingleAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "overloaded"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("Expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected exactly 1 request, got %d", got)
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(nil, "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for nil, got '%s'", got)
	}
	if got := MessageOf(errors.New("boom"), "fallback"); got != "boom" {
		t.Errorf("Expected plain error text, got '%s'", got)
	}
	if got := MessageOf(NewRemoteError(OpDemo, "", FallbackDemoMessage, 0), "x"); got != FallbackDemoMessage {
		t.Errorf("Expected demo fallback, got '%s'", got)
	}
}
