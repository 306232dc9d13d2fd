package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/credentials"
	"github.com/caseforge/caseforge/internal/evaluate"
	"github.com/caseforge/caseforge/internal/output"
)

var (
	evaluateInput    string
	evaluateMetrics  []string
	evaluateQuery    string
	evaluateContext  []string
	evaluateExpected string
	evaluateProvider string
	evaluateMessages string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score generated output with the evaluation sidecar",
	Long: `Score generated output using LLM-as-judge metrics.

The output under evaluation is read from a file (or stdin with -i -) and
sent to the evaluation sidecar together with the query and the retrieval
context the generation was based on.

Supported metrics: faithfulness, answer_relevancy, contextual_precision,
contextual_recall, conversation_completeness, hallucination, pii_leakage.
Use --metric=all to run every metric. Conversational metrics read the
message history from a JSON file via --messages.

Examples:
  caseforge evaluate -i login.feature --query="Generate login tests" --context="Users sign in with email"
  caseforge evaluate -i login.feature -m faithfulness -m hallucination
  caseforge evaluate -i - --metric=all < login.feature
  caseforge evaluate -i chat.txt -m conversation_completeness --messages=history.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateInput, "input", "i", "", "Output to evaluate (use - for stdin)")
	evaluateCmd.Flags().StringSliceVarP(&evaluateMetrics, "metric", "m", nil, "Metric to run (can be specified multiple times, or all)")
	evaluateCmd.Flags().StringVar(&evaluateQuery, "query", "", "The query the output was generated for")
	evaluateCmd.Flags().StringArrayVar(&evaluateContext, "context", nil, "Retrieval context passage (can be specified multiple times)")
	evaluateCmd.Flags().StringVar(&evaluateExpected, "expected", "", "Expected output for comparison metrics")
	evaluateCmd.Flags().StringVar(&evaluateProvider, "provider", "", "Judge LLM provider (default: sidecar's choice)")
	evaluateCmd.Flags().StringVar(&evaluateMessages, "messages", "", "JSON file with conversation messages")
	evaluateCmd.MarkFlagRequired("input")
}

func runEvaluate(ctx context.Context) error {
	out, err := readEvaluationInput(evaluateInput)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NotFoundError(err.Error())
		}
		return err
	}

	metrics, err := normalizeMetrics(evaluateMetrics)
	if err != nil {
		return err
	}

	req := evaluate.Request{
		Query:          evaluateQuery,
		Context:        evaluateContext,
		Output:         out,
		ExpectedOutput: evaluateExpected,
		Provider:       evaluateProvider,
		Metric:         metrics,
	}

	if evaluateMessages != "" {
		data, err := os.ReadFile(evaluateMessages)
		if err != nil {
			return fmt.Errorf("failed to read messages file: %w", err)
		}
		if err := json.Unmarshal(data, &req.Messages); err != nil {
			return fmt.Errorf("failed to parse messages file: %w", err)
		}
	}

	resp, err := evaluatorClient().Evaluate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to evaluate output: %w", err)
	}

	formatter := output.New(output.Format(GetFormat()))
	return formatter.FormatEvaluation(os.Stdout, resp)
}

// readEvaluationInput reads the output under evaluation from a file, or from
// stdin when path is "-".
func readEvaluationInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// normalizeMetrics validates the requested metrics. The all sentinel covers
// everything and is sent alone.
func normalizeMetrics(metrics []string) (evaluate.Selector, error) {
	if len(metrics) == 0 {
		return nil, nil
	}

	known := make(map[string]bool, len(evaluate.KnownMetrics))
	for _, m := range evaluate.KnownMetrics {
		known[m] = true
	}

	var selector evaluate.Selector
	for _, m := range metrics {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == evaluate.MetricAll {
			return evaluate.Selector{evaluate.MetricAll}, nil
		}
		if !known[m] {
			return nil, InvalidInputError(fmt.Sprintf("unknown metric %q (valid: %s, all)", m, strings.Join(evaluate.KnownMetrics, ", ")))
		}
		selector = append(selector, m)
	}
	return selector, nil
}

// evaluatorClient builds a sidecar client from the loaded config and
// credentials.
func evaluatorClient() *evaluate.Client {
	var baseURL string
	var timeout time.Duration

	if cfg := config.Get(); cfg != nil {
		baseURL = cfg.Evaluator.URL
		if cfg.Evaluator.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Evaluator.TimeoutSeconds) * time.Second
		}
	}

	return evaluate.New(baseURL, credentials.EvaluatorAPIKey(), timeout)
}
