// Package support provides test helpers and fixtures for the caseforge CLI specs.
package support

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// EnhanceRequest mirrors the enhancement service request envelope as the
// mock decodes it. Nested structures stay generic maps so assertions can
// reach into them without importing engine types.
type EnhanceRequest struct {
	TestCases   []map[string]any `json:"testCases"`
	Story       map[string]any   `json:"story"`
	FeatureName string           `json:"featureName"`
	LLMProvider string           `json:"llmProvider"`
}

// MockEnhancerServer provides a mock implementation of the feature
// enhancement service for testing.
type MockEnhancerServer struct {
	Server *httptest.Server
	URL    string

	// mu protects all fields below
	mu sync.RWMutex

	// ExpectedToken if set, validates the Authorization bearer token
	ExpectedToken string

	// FailureStatus if non-zero, every enhancement request fails with this
	// HTTP status code
	FailureStatus int

	// FailureMessage is the error body message sent with FailureStatus
	FailureMessage string

	// CannedFeature if set, is returned verbatim as the featureFile
	CannedFeature string

	// Requests records every decoded enhancement request for assertions
	Requests []EnhanceRequest
}

// NewMockEnhancerServer creates and starts a new mock enhancement service.
func NewMockEnhancerServer() *MockEnhancerServer {
	mock := &MockEnhancerServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/", mock.handleEnhance)

	mock.Server = httptest.NewServer(mux)
	mock.URL = mock.Server.URL

	return mock
}

// Close shuts down the mock server.
func (m *MockEnhancerServer) Close() {
	if m.Server != nil {
		m.Server.Close()
	}
}

// RequestCount returns how many enhancement requests the mock has received.
func (m *MockEnhancerServer) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Requests)
}

// LastRequest returns the most recent enhancement request, or nil.
func (m *MockEnhancerServer) LastRequest() *EnhanceRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}

// SetFailure makes every subsequent request fail with the given status and
// error message. A zero status restores normal behavior.
func (m *MockEnhancerServer) SetFailure(status int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailureStatus = status
	m.FailureMessage = message
}

// handleEnhance handles POST / enhancement requests.
func (m *MockEnhancerServer) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	m.mu.RLock()
	expectedToken := m.ExpectedToken
	m.mu.RUnlock()

	if expectedToken != "" {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+expectedToken {
			m.writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
	}

	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	failureStatus := m.FailureStatus
	failureMessage := m.FailureMessage
	canned := m.CannedFeature
	m.mu.Unlock()

	if failureStatus != 0 {
		m.writeError(w, failureStatus, failureMessage)
		return
	}

	feature := canned
	if feature == "" {
		feature = defaultEnhancedFeature(req)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"featureFile": feature,
		"stats":       featureStats(feature),
	})
}

// writeError writes an enhancement-service error body.
func (m *MockEnhancerServer) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": message,
	})
}

// defaultEnhancedFeature fabricates a recognizably service-generated feature
// from the request so scenarios can tell enhanced output from local output.
func defaultEnhancedFeature(req EnhanceRequest) string {
	title := req.FeatureName
	if title == "" {
		title = "Enhanced Feature"
	}

	var b strings.Builder
	b.WriteString("Feature: " + title + "\n\n")
	b.WriteString("  Scenario Outline: Enhanced by service\n")
	b.WriteString("    Given the enhancement service rewrote this batch\n")
	b.WriteString("    When the <case> scenario runs\n")
	b.WriteString("    Then the outcome is verified\n\n")
	b.WriteString("    Examples:\n")
	b.WriteString("      | case |\n")
	for i := range req.TestCases {
		name, _ := req.TestCases[i]["name"].(string)
		if name == "" {
			name = "unnamed"
		}
		b.WriteString("      | " + name + " |\n")
	}

	return b.String()
}

// featureStats computes the stats block the service reports for a feature
// text: line count, Scenario Outline count, and Examples data row count.
func featureStats(feature string) map[string]int {
	lines := strings.Split(feature, "\n")

	examplesCount := 0
	tableRows := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "Examples:" {
			examplesCount++
		}
		if strings.HasPrefix(trimmed, "|") {
			tableRows++
		}
	}

	// One header row per Examples block
	dataRows := tableRows - examplesCount
	if dataRows < 0 {
		dataRows = 0
	}

	return map[string]int{
		"lines":         len(lines),
		"scenarios":     strings.Count(feature, "Scenario Outline:"),
		"examplesCount": dataRows,
	}
}
