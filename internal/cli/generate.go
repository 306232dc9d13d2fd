package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/output"
	"github.com/caseforge/caseforge/internal/testcase"
)

var (
	generateInput       string
	generateFeatureName string
	generateStrategy    string
	generateProvider    string
	generateOutput      string
	generateCopy        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Gherkin feature file from a test case batch",
	Long: `Generate a Gherkin feature file from a batch of test cases.

The batch is read from a JSON or YAML file (or stdin with -i -). Steps are
classified into Given/When/Then by their position in the sequence, step data
is collected into an Examples table, and the result is rendered as a single
Scenario Outline.

With --strategy=enhanced the batch is sent to the configured enhancement
service; if the service fails, generation falls back to local synthesis and
a warning is printed to stderr.

Examples:
  caseforge generate -i testcases.json
  caseforge generate -i testcases.yaml -o login.feature
  caseforge generate -i - < testcases.json
  caseforge generate -i testcases.json --strategy=enhanced --provider=openai
  caseforge generate -i testcases.json -f json
  caseforge generate -i testcases.json --copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Batch file to read (use - for stdin)")
	generateCmd.Flags().StringVar(&generateFeatureName, "feature-name", "", "Override the feature title")
	generateCmd.Flags().StringVar(&generateStrategy, "strategy", "", "Synthesis strategy: local, enhanced (default: from config)")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "LLM provider hint for enhanced generation")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the feature file to a path instead of stdout")
	generateCmd.Flags().BoolVar(&generateCopy, "copy", false, "Copy the feature file to the clipboard")
	generateCmd.MarkFlagRequired("input")
}

func runGenerate(ctx context.Context) error {
	batch, err := testcase.LoadBatch(generateInput)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NotFoundError(err.Error())
		}
		return err
	}

	// Flags win over batch fields
	if generateFeatureName != "" {
		batch.FeatureName = generateFeatureName
	}
	if generateProvider != "" {
		batch.LLMProvider = generateProvider
	}

	strat, err := resolveStrategy(generateStrategy, generateProvider)
	if err != nil {
		return err
	}

	rendered, err := strat.Synthesize(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to generate feature: %w", err)
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(rendered.FeatureFile), 0644); err != nil {
			return fmt.Errorf("failed to write feature file: %w", err)
		}
		if !IsQuiet() {
			fmt.Printf("Wrote %s\n", generateOutput)
		}
	}

	if generateCopy {
		if err := clipboard.WriteAll(rendered.FeatureFile); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		if !IsQuiet() {
			fmt.Println("Copied feature file to clipboard")
		}
	}

	// The feature went to a file or the clipboard; don't repeat it on stdout.
	if generateOutput != "" || generateCopy {
		return nil
	}

	formatter := output.New(output.Format(GetFormat()))
	return formatter.FormatRendered(os.Stdout, rendered)
}
