// Package output provides formatters for displaying synthesis and
// evaluation results.
package output

import (
	"io"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/evaluate"
	"github.com/caseforge/caseforge/internal/testcase"
)

// Format represents an output format type.
type Format string

const (
	FormatFeature Format = "feature"
	FormatJSON    Format = "json"
	FormatStats   Format = "stats"
)

// ValidFormats returns all valid format values.
func ValidFormats() []Format {
	return []Format{FormatFeature, FormatJSON, FormatStats}
}

// IsValid checks if the format is a valid output format.
func (f Format) IsValid() bool {
	switch f {
	case FormatFeature, FormatJSON, FormatStats:
		return true
	default:
		return false
	}
}

// Formatter defines the interface for outputting results in various formats.
type Formatter interface {
	// FormatRendered outputs a synthesized feature.
	FormatRendered(w io.Writer, r *testcase.Rendered) error

	// FormatEvaluation outputs metric results returned by the evaluation
	// sidecar.
	FormatEvaluation(w io.Writer, resp *evaluate.Response) error

	// FormatHealth outputs the result of an evaluator health probe.
	FormatHealth(w io.Writer, endpoint string, status *evaluate.HealthStatus) error

	// FormatConfig outputs configuration.
	FormatConfig(w io.Writer, cfg *config.Config) error
}

// New creates a formatter for the specified format.
func New(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatStats:
		return &StatsFormatter{}
	case FormatFeature:
		fallthrough
	default:
		return &FeatureFormatter{}
	}
}
