package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage caseforge configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long:  `Display the effective configuration after defaults and file overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Long:  `Print the path of the config file in use, or the default location when no file was found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigPath()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow() error {
	cfg := config.Get()
	if cfg == nil {
		return ConfigError("no configuration loaded")
	}

	formatter := output.New(output.Format(GetFormat()))
	return formatter.FormatConfig(os.Stdout, cfg)
}

func runConfigPath() error {
	if path := config.ConfigFilePath(); path != "" {
		fmt.Println(path)
		return nil
	}

	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("%s (not created yet)\n", path)
	return nil
}
