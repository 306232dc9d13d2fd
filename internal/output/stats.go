package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/evaluate"
	"github.com/caseforge/caseforge/internal/testcase"
)

// StatsFormatter outputs human-readable summaries instead of raw artifacts.
type StatsFormatter struct{}

// FormatRendered outputs synthesis statistics for the feature file.
func (f *StatsFormatter) FormatRendered(w io.Writer, r *testcase.Rendered) error {
	fmt.Fprintln(w, "Synthesis complete:")
	fmt.Fprintf(w, "  Lines:     %d\n", r.Stats.Lines)
	fmt.Fprintf(w, "  Scenarios: %d\n", r.Stats.Scenarios)
	fmt.Fprintf(w, "  Examples:  %d\n", r.Stats.ExamplesCount)
	return nil
}

// FormatEvaluation outputs metric results in table format.
func (f *StatsFormatter) FormatEvaluation(w io.Writer, resp *evaluate.Response) error {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No results.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	fmt.Fprintln(tw, "METRIC\tSCORE\tDETAIL")

	// Rows
	for _, res := range resp.Results {
		score := "-"
		if res.Score != nil {
			score = fmt.Sprintf("%.2f", *res.Score)
		}

		detail := res.Explanation
		if res.Err != "" {
			detail = "error: " + res.Err
		}
		detail = strings.ReplaceAll(detail, "\n", " ")

		// Truncate detail if too long
		if len(detail) > 60 {
			detail = detail[:57] + "..."
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", res.MetricName, score, detail)
	}

	return tw.Flush()
}

// FormatHealth outputs health probe results.
func (f *StatsFormatter) FormatHealth(w io.Writer, endpoint string, status *evaluate.HealthStatus) error {
	if status.OK {
		fmt.Fprintf(w, "%s: healthy (%v)\n", endpoint, status.Latency)
		if status.Service != "" {
			fmt.Fprintf(w, "  service: %s %s\n", status.Service, status.Version)
		}
	} else {
		fmt.Fprintf(w, "%s: unhealthy - %s\n", endpoint, status.Message)
	}
	return nil
}

// FormatConfig outputs configuration.
func (f *StatsFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	fmt.Fprintf(w, "Configuration:\n")
	fmt.Fprintf(w, "  Version:   %d\n", cfg.Version)
	fmt.Fprintf(w, "  Format:    %s\n", cfg.Defaults.Format)
	fmt.Fprintf(w, "  Strategy:  %s\n", cfg.Defaults.Strategy)
	fmt.Fprintf(w, "  Provider:  %s\n", cfg.Defaults.Provider)
	if cfg.Enhancer.URL != "" {
		fmt.Fprintf(w, "  Enhancer:  %s\n", cfg.Enhancer.URL)
	}
	fmt.Fprintf(w, "  Evaluator: %s\n", cfg.Evaluator.URL)
	return nil
}
