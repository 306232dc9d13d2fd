package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/caseforge/caseforge/internal/evaluate"
)

func TestNormalizeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		metrics  []string
		expected []string
		wantErr  bool
	}{
		{
			name:     "empty leaves the choice to the sidecar",
			metrics:  nil,
			expected: nil,
		},
		{
			name:     "single metric",
			metrics:  []string{"faithfulness"},
			expected: []string{"faithfulness"},
		},
		{
			name:     "multiple metrics",
			metrics:  []string{"faithfulness", "hallucination"},
			expected: []string{"faithfulness", "hallucination"},
		},
		{
			name:     "all sentinel collapses the selection",
			metrics:  []string{"faithfulness", "all", "hallucination"},
			expected: []string{"all"},
		},
		{
			name:     "case and whitespace are normalized",
			metrics:  []string{" Faithfulness "},
			expected: []string{"faithfulness"},
		},
		{
			name:    "unknown metric",
			metrics: []string{"vibes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeMetrics(tt.metrics)
			if tt.wantErr {
				if err == nil {
					t.Fatal("normalizeMetrics() expected error, got nil")
				}
				if GetExitCode(err) != ExitError {
					t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitError)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeMetrics() error = %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("normalizeMetrics(%v) = %v, want %v", tt.metrics, got, tt.expected)
			}
		})
	}
}

func TestNormalizeMetricsCoversKnownMetrics(t *testing.T) {
	got, err := normalizeMetrics(evaluate.KnownMetrics)
	if err != nil {
		t.Fatalf("normalizeMetrics() error = %v", err)
	}
	if len(got) != len(evaluate.KnownMetrics) {
		t.Errorf("len = %d, want %d", len(got), len(evaluate.KnownMetrics))
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil error", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitError},
		{"not found", NotFoundError("missing"), ExitNotFound},
		{"unhealthy", UnhealthyError("down"), ExitUnhealthy},
		{"config", ConfigError("bad"), ExitConfigError},
		{"wrapped config", WrapExitCodeError(ExitConfigError, "failed to load configuration", errors.New("parse error")), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.code {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}
