package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/credentials"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage service credentials",
	Long: `Manage stored credentials for the enhancement service and the
evaluation sidecar.

Credentials are stored in ~/.config/caseforge/credentials.yaml with owner-only
permissions. The CASEFORGE_ENHANCER_TOKEN and CASEFORGE_EVALUATOR_KEY
environment variables take priority over stored values.`,
}

var authSetEnhancerCmd = &cobra.Command{
	Use:   "set-enhancer-token <token>",
	Short: "Store the enhancement service bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthSet(args[0], credentials.SaveEnhancerToken, "enhancer token")
	},
}

var authSetEvaluatorCmd = &cobra.Command{
	Use:   "set-evaluator-key <key>",
	Short: "Store the evaluation sidecar API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthSet(args[0], credentials.SaveEvaluatorAPIKey, "evaluator key")
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials are configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthStatus()
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetEnhancerCmd)
	authCmd.AddCommand(authSetEvaluatorCmd)
	authCmd.AddCommand(authStatusCmd)
}

func runAuthSet(value string, save func(string) error, what string) error {
	if value == "" {
		return InvalidInputError(fmt.Sprintf("%s must not be empty", what))
	}

	if err := save(value); err != nil {
		return fmt.Errorf("failed to save %s: %w", what, err)
	}

	if !IsQuiet() {
		path, err := credentials.DefaultCredentialsPath()
		if err != nil {
			path = "credentials file"
		}
		fmt.Printf("Saved %s to %s\n", what, path)
	}
	return nil
}

func runAuthStatus() error {
	fmt.Printf("enhancer token: %s\n", credentialSource(credentials.EnvEnhancerToken, credentials.EnhancerToken()))
	fmt.Printf("evaluator key:  %s\n", credentialSource(credentials.EnvEvaluatorKey, credentials.EvaluatorAPIKey()))
	return nil
}
