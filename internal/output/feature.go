package output

import (
	"fmt"
	"io"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/evaluate"
	"github.com/caseforge/caseforge/internal/testcase"
	"gopkg.in/yaml.v3"
)

// FeatureFormatter outputs the raw feature file text. Results that have no
// feature representation fall back to the human-readable forms.
type FeatureFormatter struct {
	stats StatsFormatter
}

// FormatRendered writes the synthesized feature file verbatim.
func (f *FeatureFormatter) FormatRendered(w io.Writer, r *testcase.Rendered) error {
	_, err := io.WriteString(w, r.FeatureFile)
	return err
}

// FormatEvaluation outputs metric results in human-readable form.
func (f *FeatureFormatter) FormatEvaluation(w io.Writer, resp *evaluate.Response) error {
	return f.stats.FormatEvaluation(w, resp)
}

// FormatHealth outputs health probe results in human-readable form.
func (f *FeatureFormatter) FormatHealth(w io.Writer, endpoint string, status *evaluate.HealthStatus) error {
	return f.stats.FormatHealth(w, endpoint, status)
}

// FormatConfig outputs configuration in YAML format.
func (f *FeatureFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}
	_, err = w.Write(data)
	return err
}
