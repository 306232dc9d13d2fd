// Package evaluate is a client for the evaluation sidecar that scores
// generated feature text with LLM-judged quality metrics.
package evaluate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// EnvEndpoint overrides the configured base URL. Used by tests and custom
// deployments.
const EnvEndpoint = "CASEFORGE_EVALUATOR_URL"

const defaultTimeout = 60 * time.Second

// MetricAll asks the service to run every metric it supports.
const MetricAll = "all"

// KnownMetrics lists the metrics the sidecar implements. The service is the
// authority; this list exists for CLI help text.
var KnownMetrics = []string{
	"faithfulness",
	"answer_relevancy",
	"contextual_precision",
	"contextual_recall",
	"conversation_completeness",
	"hallucination",
	"pii_leakage",
}

// Selector picks which metrics a request evaluates. A single name marshals
// as a bare JSON string because the service treats the "all" sentinel and
// single metrics specially; multiple names marshal as an array.
type Selector []string

// MarshalJSON implements json.Marshaler.
func (s Selector) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// Message is one conversational turn for conversation_completeness.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request mirrors the sidecar's /eval payload.
type Request struct {
	// Query is what the user asked; recommended for relevancy metrics.
	Query string `json:"query,omitempty"`

	// Context holds source passages the output should stay faithful to.
	Context []string `json:"context,omitempty"`

	// Output is the text under evaluation.
	Output string `json:"output,omitempty"`

	// ExpectedOutput is the reference answer for contextual metrics.
	ExpectedOutput string `json:"expected_output,omitempty"`

	// Provider selects the LLM provider on the service side.
	Provider string `json:"provider,omitempty"`

	// Metric selects the metrics to run; empty defaults server-side to
	// faithfulness.
	Metric Selector `json:"metric,omitempty"`

	// Messages supply conversational turns for conversation_completeness.
	Messages []Message `json:"messages,omitempty"`
}

// MetricResult is one metric's outcome. Score is nil when the metric
// errored; Err carries the per-metric failure message.
type MetricResult struct {
	MetricName  string   `json:"metric_name"`
	Score       *float64 `json:"score"`
	Explanation string   `json:"explanation"`
	Err         string   `json:"error"`
}

// Response is the sidecar's /eval reply. The legacy top-level mirror fields
// are not decoded; results is authoritative.
type Response struct {
	Results []MetricResult `json:"results"`
}

// Health is the sidecar's /health report.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// OK reports whether the service considers itself healthy.
func (h *Health) OK() bool {
	return h.Status == "ok"
}

// HealthStatus describes the outcome of a health probe against the sidecar.
// Unlike Health it is always produced, even when the probe itself fails.
type HealthStatus struct {
	OK      bool
	Service string
	Version string
	Message string
	Latency time.Duration
}

// ServiceError is a non-2xx reply from the sidecar. Detail carries the
// body's detail or error field when present.
type ServiceError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("evaluation API error: %s - %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("evaluation API error: %s", e.Status)
}

// Client talks to the evaluation sidecar.
type Client struct {
	baseURL string
	client  *http.Client
}

// BaseURL returns the effective endpoint after environment overrides.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// New creates a sidecar client. An empty apiKey means unauthenticated
// requests; a non-positive timeout selects the default.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if env := os.Getenv(EnvEndpoint); env != "" {
		baseURL = env
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	if apiKey != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
		client = oauth2.NewClient(context.Background(), ts)
		client.Timeout = timeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Evaluate scores text against the requested metrics.
func (c *Client) Evaluate(ctx context.Context, req Request) (*Response, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/eval", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     errorDetail(respBody),
		}
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// Health fetches the sidecar's health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     errorDetail(respBody),
		}
	}

	var health Health
	if err := json.Unmarshal(respBody, &health); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &health, nil
}

// CheckHealth probes the sidecar and reports the outcome. Probe failures are
// captured in the status rather than returned, so callers always get a result
// they can display.
func (c *Client) CheckHealth(ctx context.Context) *HealthStatus {
	start := time.Now()
	health, err := c.Health(ctx)
	latency := time.Since(start)

	if err != nil {
		return &HealthStatus{OK: false, Message: err.Error(), Latency: latency}
	}

	status := &HealthStatus{
		OK:      health.OK(),
		Service: health.Service,
		Version: health.Version,
		Latency: latency,
	}
	if !status.OK {
		status.Message = fmt.Sprintf("service reported status %q", health.Status)
	}
	return status
}

// errorDetail extracts the detail (FastAPI validation) or error field from
// a failure body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}
