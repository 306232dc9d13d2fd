package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/credentials"
	"github.com/caseforge/caseforge/internal/enhance"
	"github.com/caseforge/caseforge/internal/local"
	"github.com/caseforge/caseforge/internal/output"
)

var (
	cfgFile    string
	formatFlag string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "caseforge",
	Short: "Synthesize Gherkin feature files from structured test cases",
	Long: `caseforge turns structured test case definitions into Gherkin feature
files with Scenario Outlines and Examples tables.

Batches of test cases are loaded from JSON or YAML files and synthesized
locally, or sent to a remote enhancement service with automatic fallback
to local synthesis when the service fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return WrapExitCodeError(ExitConfigError, "failed to load configuration", err)
		}
		if err := credentials.Init(); err != nil {
			return WrapExitCodeError(ExitConfigError, "failed to load credentials", err)
		}
		if formatFlag != "" && !output.Format(formatFlag).IsValid() {
			return InvalidInputError(fmt.Sprintf("invalid format %q (valid: feature, json, stats)", formatFlag))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .caseforge/config.yaml, then ~/.config/caseforge/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: feature, json, stats (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress confirmation messages")

	local.Register()
	enhance.Register()
}

// Execute runs the CLI application.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

// GetFormat returns the effective output format, preferring the --format
// flag over the configured default.
func GetFormat() string {
	if formatFlag != "" {
		return formatFlag
	}
	if cfg := config.Get(); cfg != nil && cfg.Defaults.Format != "" {
		return cfg.Defaults.Format
	}
	return string(output.FormatFeature)
}

// IsQuiet reports whether confirmation output should be suppressed.
func IsQuiet() bool {
	return quiet
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}
