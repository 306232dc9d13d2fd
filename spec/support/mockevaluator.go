// Package support provides test helpers and fixtures for the caseforge CLI specs.
package support

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// evaluatorMetrics lists the metric names the mock sidecar implements,
// mirroring the real service's catalog.
var evaluatorMetrics = []string{
	"faithfulness",
	"answer_relevancy",
	"contextual_precision",
	"contextual_recall",
	"conversation_completeness",
	"hallucination",
	"pii_leakage",
}

// EvalRequest mirrors the sidecar request envelope as the mock decodes it.
// Metric stays untyped because the wire format allows both a bare string
// and an array of strings.
type EvalRequest struct {
	Query          string              `json:"query"`
	Context        []string            `json:"context"`
	Output         string              `json:"output"`
	ExpectedOutput string              `json:"expected_output"`
	Provider       string              `json:"provider"`
	Metric         any                 `json:"metric"`
	Messages       []map[string]string `json:"messages"`
}

// MockEvaluatorServer provides a mock implementation of the evaluation
// sidecar for testing.
type MockEvaluatorServer struct {
	Server *httptest.Server
	URL    string

	// mu protects all fields below
	mu sync.RWMutex

	// ExpectedAPIKey if set, validates the Authorization bearer token
	ExpectedAPIKey string

	// Status is the health status the sidecar reports; anything other
	// than "ok" reads as unhealthy
	Status string

	// ServiceName and ServiceVersion fill the health report
	ServiceName    string
	ServiceVersion string

	// Scores maps metric names to canned scores; metrics without an
	// entry score defaultScore
	Scores map[string]float64

	// FailMetrics maps metric names to error messages; those metrics
	// return a null score with the message in the error field
	FailMetrics map[string]string

	// Requests records every decoded evaluation request for assertions
	Requests []EvalRequest
}

const defaultScore = 0.85

// NewMockEvaluatorServer creates and starts a new mock evaluation sidecar.
func NewMockEvaluatorServer() *MockEvaluatorServer {
	mock := &MockEvaluatorServer{
		Status:         "ok",
		ServiceName:    "eval-sidecar",
		ServiceVersion: "1.4.2",
		Scores:         make(map[string]float64),
		FailMetrics:    make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/eval", mock.handleEval)
	mux.HandleFunc("/health", mock.handleHealth)

	mock.Server = httptest.NewServer(mux)
	mock.URL = mock.Server.URL

	return mock
}

// Close shuts down the mock server.
func (m *MockEvaluatorServer) Close() {
	if m.Server != nil {
		m.Server.Close()
	}
}

// SetScore sets the canned score for a metric.
func (m *MockEvaluatorServer) SetScore(metric string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scores[metric] = score
}

// FailMetric makes a metric return a null score with the given error message.
func (m *MockEvaluatorServer) FailMetric(metric, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailMetrics[metric] = message
}

// RequestCount returns how many evaluation requests the mock has received.
func (m *MockEvaluatorServer) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Requests)
}

// LastRequest returns the most recent evaluation request, or nil.
func (m *MockEvaluatorServer) LastRequest() *EvalRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}

// validateAuth checks the Authorization header when an API key is expected.
func (m *MockEvaluatorServer) validateAuth(w http.ResponseWriter, r *http.Request) bool {
	m.mu.RLock()
	expectedKey := m.ExpectedAPIKey
	m.mu.RUnlock()

	if expectedKey == "" {
		return true
	}
	if r.Header.Get("Authorization") != "Bearer "+expectedKey {
		m.writeDetail(w, http.StatusUnauthorized, "invalid API key")
		return false
	}
	return true
}

// handleEval handles POST /eval requests.
func (m *MockEvaluatorServer) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !m.validateAuth(w, r) {
		return
	}

	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.writeDetail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	metrics, err := requestedMetrics(req.Metric)
	if err != nil {
		m.writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]map[string]any, 0, len(metrics))
	for _, name := range metrics {
		if msg, failed := m.FailMetrics[name]; failed {
			results = append(results, map[string]any{
				"metric_name": name,
				"score":       nil,
				"explanation": "",
				"error":       msg,
			})
			continue
		}

		score := defaultScore
		if s, ok := m.Scores[name]; ok {
			score = s
		}
		results = append(results, map[string]any{
			"metric_name": name,
			"score":       score,
			"explanation": "mock evaluation of " + name,
			"error":       nil,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"results": results,
	})
}

// handleHealth handles GET /health requests.
func (m *MockEvaluatorServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  m.Status,
		"service": m.ServiceName,
		"version": m.ServiceVersion,
	})
}

// writeDetail writes a FastAPI-style error body.
func (m *MockEvaluatorServer) writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"detail": detail,
	})
}

// requestedMetrics expands the wire metric field into concrete metric names.
// A missing field defaults to faithfulness; "all" expands to every metric.
func requestedMetrics(metric any) ([]string, error) {
	var names []string
	switch v := metric.(type) {
	case nil:
		return []string{"faithfulness"}, nil
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("metric entries must be strings, got %T", item)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("metric must be a string or array, got %T", metric)
	}

	if len(names) == 1 && names[0] == "all" {
		return evaluatorMetrics, nil
	}

	for _, name := range names {
		if !knownEvaluatorMetric(name) {
			return nil, fmt.Errorf("unknown metric %q", name)
		}
	}
	return names, nil
}

func knownEvaluatorMetric(name string) bool {
	for _, m := range evaluatorMetrics {
		if m == name {
			return true
		}
	}
	return false
}
