// Package enhance implements the remote enhancement strategy: a client for
// the feature generation service that rewrites a batch into richer Gherkin.
// A Synthesize call makes exactly one attempt; fallback is the caller's
// concern (see strategy.Fallback).
package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"

	"github.com/caseforge/caseforge/internal/strategy"
	"github.com/caseforge/caseforge/internal/testcase"
)

// Name is the registry name of the remote enhancement strategy.
const Name = "enhanced"

// EnvEndpoint overrides the configured endpoint URL. Used by tests and
// custom deployments.
const EnvEndpoint = "CASEFORGE_ENHANCER_URL"

const defaultTimeout = 30 * time.Second

// Request is the enhancement service request envelope.
type Request struct {
	TestCases   []testcase.TestCase `json:"testCases"`
	Story       *testcase.Story     `json:"story,omitempty"`
	FeatureName string              `json:"featureName,omitempty"`
	LLMProvider string              `json:"llmProvider"`
}

// Response is the enhancement service response envelope.
type Response struct {
	FeatureFile string         `json:"featureFile"`
	Stats       testcase.Stats `json:"stats"`
}

// APIError is a non-2xx reply from the enhancement service. Message carries
// the optional error field from the response body.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("enhancement API error: %s - %s", e.Status, e.Message)
	}
	return fmt.Sprintf("enhancement API error: %s", e.Status)
}

// Enhancer posts batches to the enhancement service.
type Enhancer struct {
	endpoint string
	provider string
	client   *http.Client
}

// New creates an unconfigured enhancer. Configure must be called before
// Synthesize.
func New() *Enhancer {
	return &Enhancer{}
}

// Name returns the registry name.
func (e *Enhancer) Name() string {
	return Name
}

// Configure validates the endpoint and builds the HTTP client. A configured
// token is attached as a static bearer credential.
func (e *Enhancer) Configure(cfg strategy.Config) error {
	// CASEFORGE_ENHANCER_URL wins over the config file, mirroring how the
	// CLI is pointed at mock servers in tests.
	endpoint := os.Getenv(EnvEndpoint)
	if endpoint == "" {
		endpoint = cfg.EndpointURL
	}
	if endpoint == "" {
		return errors.New("enhancement endpoint URL is not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = oauth2.NewClient(context.Background(), ts)
		client.Timeout = timeout
	}

	e.endpoint = endpoint
	e.provider = cfg.Provider
	e.client = client
	return nil
}

// Synthesize posts the batch to the enhancement service and decodes the
// enhanced feature file. Any failure is returned; no retries are made.
func (e *Enhancer) Synthesize(ctx context.Context, batch *testcase.Batch) (*testcase.Rendered, error) {
	if e.client == nil {
		return nil, errors.New("enhancer is not configured")
	}

	provider := batch.LLMProvider
	if provider == "" {
		provider = e.provider
	}

	jsonBody, err := json.Marshal(Request{
		TestCases:   batch.TestCases,
		Story:       batch.Story,
		FeatureName: batch.FeatureName,
		LLMProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errorMessage(respBody),
		}
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.FeatureFile == "" {
		return nil, errors.New("response carried no feature file")
	}

	return &testcase.Rendered{FeatureFile: result.FeatureFile, Stats: result.Stats}, nil
}

// errorMessage extracts the optional error field from a failure body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}

// Register adds the enhanced strategy to the registry.
func Register() {
	strategy.Register(Name, func() strategy.Strategy {
		return New()
	})
}
