package output

import (
	"encoding/json"
	"io"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/evaluate"
	"github.com/caseforge/caseforge/internal/testcase"
)

// JSONFormatter outputs data in JSON format.
type JSONFormatter struct{}

// FormatRendered outputs the feature file and its statistics as JSON.
func (f *JSONFormatter) FormatRendered(w io.Writer, r *testcase.Rendered) error {
	return f.writeJSON(w, r)
}

// FormatEvaluation outputs metric results as JSON.
func (f *JSONFormatter) FormatEvaluation(w io.Writer, resp *evaluate.Response) error {
	return f.writeJSON(w, resp)
}

// FormatHealth outputs health probe results as JSON.
func (f *JSONFormatter) FormatHealth(w io.Writer, endpoint string, status *evaluate.HealthStatus) error {
	result := map[string]any{
		"endpoint": endpoint,
		"healthy":  status.OK,
		"latency":  status.Latency.String(),
	}
	if status.Service != "" {
		result["service"] = status.Service
		result["version"] = status.Version
	}
	if status.Message != "" {
		result["message"] = status.Message
	}
	return f.writeJSON(w, result)
}

// FormatConfig outputs configuration as JSON.
func (f *JSONFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	return f.writeJSON(w, cfg)
}

// writeJSON encodes the value as indented JSON and writes it to w.
func (f *JSONFormatter) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
