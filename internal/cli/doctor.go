package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/credentials"
	"github.com/caseforge/caseforge/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of configured services",
	Long: `Check connectivity to the evaluation sidecar and show where
configuration and credentials are loaded from.

Exits with status 2 if the evaluator is unreachable or unhealthy.

Examples:
  caseforge doctor
  caseforge doctor -f json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(ctx context.Context) error {
	client := evaluatorClient()
	status := client.CheckHealth(ctx)

	formatter := output.New(output.Format(GetFormat()))
	if err := formatter.FormatHealth(os.Stdout, client.BaseURL(), status); err != nil {
		return err
	}

	// Discovery details are noise for machine consumers.
	if GetFormat() != string(output.FormatJSON) && !IsQuiet() {
		printDiscovery()
	}

	if !status.OK {
		return UnhealthyError(fmt.Sprintf("evaluator at %s is unhealthy", client.BaseURL()))
	}
	return nil
}

// printDiscovery reports where configuration and credentials come from.
func printDiscovery() {
	if path := config.ConfigFilePath(); path != "" {
		fmt.Printf("config: %s\n", path)
	} else {
		fmt.Println("config: built-in defaults (no config file found)")
	}

	fmt.Printf("enhancer token: %s\n", credentialSource(credentials.EnvEnhancerToken, credentials.EnhancerToken()))
	fmt.Printf("evaluator key:  %s\n", credentialSource(credentials.EnvEvaluatorKey, credentials.EvaluatorAPIKey()))
}

// credentialSource describes where a credential value came from without
// printing the value itself.
func credentialSource(envVar, value string) string {
	if value == "" {
		return "not set"
	}
	if os.Getenv(envVar) != "" {
		return "set (environment)"
	}
	return "set (credentials file)"
}
