package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/synopsis/internal/logger"
)

// Operation names used in errors and logs
const (
	OpSummarize = "summarize"
	OpDemo      = "demo"
)

// maxResponseBytes caps how much of a response body is decoded
const maxResponseBytes = 8 << 20

// Config holds connection settings for the summarization service
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:5000
	BaseURL string `json:"base_url"`

	// Timeout bounds a single request including reading the body
	Timeout time.Duration `json:"timeout"`

	// UserAgent sent with every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns the configuration for a locally running service
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://localhost:5000",
		Timeout:   120 * time.Second,
		UserAgent: "synopsis",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Client issues the two service calls and normalizes every outcome into
// either a result or a *Error. It performs exactly one attempt per call.
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// New creates a new client
func New(config *Config, log *logger.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL: scheme must be http or https")
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     log.WithComponent("remote"),
	}, nil
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Summarize sends text to POST /summarize
func (c *Client) Summarize(ctx context.Context, text string) (*SummaryResult, error) {
	body, err := json.Marshal(&SummarizeRequest{Text: text})
	if err != nil {
		return nil, NewTransportError(OpSummarize, err)
	}

	var resp SummarizeResponse
	status, requestID, rerr := c.do(ctx, OpSummarize, http.MethodPost, "/summarize", body, &resp)
	if rerr != nil {
		return nil, rerr
	}

	if resp.Summary == "" {
		e := NewRemoteError(OpSummarize, resp.Error, FallbackSummarizeMessage, status)
		e.RequestID = requestID
		c.log.WarnWithFields("summarize rejected", []logger.Field{
			logger.RequestID(requestID), logger.F("status", status), logger.F("message", e.Message),
		})
		return nil, e
	}

	return &SummaryResult{Summary: resp.Summary, Stats: resp.Stats}, nil
}

// FetchDemo loads the sample document from GET /demo
func (c *Client) FetchDemo(ctx context.Context) (*DemoResult, error) {
	var resp DemoResponse
	status, requestID, rerr := c.do(ctx, OpDemo, http.MethodGet, "/demo", nil, &resp)
	if rerr != nil {
		return nil, rerr
	}

	if resp.Document == "" {
		e := NewRemoteError(OpDemo, resp.Error, FallbackDemoMessage, status)
		e.RequestID = requestID
		c.log.WarnWithFields("demo rejected", []logger.Field{
			logger.RequestID(requestID), logger.F("status", status), logger.F("message", e.Message),
		})
		return nil, e
	}

	return &DemoResult{Document: resp.Document, ReferenceSummary: resp.ReferenceSummary}, nil
}

// do performs one request and decodes the JSON body into out. The status
// code is only reported, never interpreted: the body alone decides success.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out interface{}) (int, string, *Error) {
	startTime := time.Now()
	requestID := uuid.NewString()
	endpoint := c.baseURL.JoinPath(path)

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return 0, requestID, c.transportFailure(op, requestID, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.log.DebugWithFields("sending request", []logger.Field{
		logger.RequestID(requestID), logger.F("method", method), logger.F("url", endpoint.String()),
	})

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, requestID, c.transportFailure(op, requestID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		e := c.transportFailure(op, requestID, fmt.Errorf("invalid response (status %d): %w", resp.StatusCode, err))
		e.StatusCode = resp.StatusCode
		return resp.StatusCode, requestID, e
	}

	c.log.DebugWithFields("request completed", []logger.Field{
		logger.RequestID(requestID), logger.F("status", resp.StatusCode), logger.Duration(time.Since(startTime)),
	})

	return resp.StatusCode, requestID, nil
}

func (c *Client) transportFailure(op, requestID string, cause error) *Error {
	e := NewTransportError(op, cause)
	e.RequestID = requestID
	c.log.WarnWithFields("request failed", []logger.Field{
		logger.RequestID(requestID), logger.F("op", op), logger.Error(cause),
	})
	return e
}
