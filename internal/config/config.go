// Package config provides configuration loading and management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version   int       `mapstructure:"version" json:"version" yaml:"version"`
	Defaults  Defaults  `mapstructure:"defaults" json:"defaults" yaml:"defaults"`
	Enhancer  Enhancer  `mapstructure:"enhancer" json:"enhancer" yaml:"enhancer"`
	Evaluator Evaluator `mapstructure:"evaluator" json:"evaluator" yaml:"evaluator"`
}

// Defaults contains global default settings.
type Defaults struct {
	Format   string `mapstructure:"format" json:"format,omitempty" yaml:"format,omitempty"`
	Strategy string `mapstructure:"strategy" json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Provider string `mapstructure:"provider" json:"provider,omitempty" yaml:"provider,omitempty"`
}

// Enhancer configures the remote feature enhancement service.
type Enhancer struct {
	URL            string `mapstructure:"url" json:"url,omitempty" yaml:"url,omitempty"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// Evaluator configures the evaluation sidecar.
type Evaluator struct {
	URL            string `mapstructure:"url" json:"url,omitempty" yaml:"url,omitempty"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

var (
	cfg     *Config
	cfgFile string
)

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "caseforge"), nil
}

// Init initializes the configuration system.
// Config files are searched in the following order:
// 1. Explicit path via cfgPath parameter (--config flag)
// 2. Project-local: .caseforge/config.yaml (current directory)
// 3. User global: ~/.config/caseforge/config.yaml
func Init(cfgPath string) error {
	cfgFile = cfgPath

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Check for project-local config first
		viper.AddConfigPath(".caseforge")
		// Then check user global config
		configPath, err := configDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(configPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("defaults.format", "feature")
	viper.SetDefault("defaults.strategy", "local")
	viper.SetDefault("defaults.provider", "groq")
	viper.SetDefault("enhancer.timeout_seconds", 30)
	viper.SetDefault("evaluator.url", "http://localhost:8000")
	viper.SetDefault("evaluator.timeout_seconds", 60)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration.
// Returns nil if Init has not been called.
func Get() *Config {
	return cfg
}

// ConfigFilePath returns the path to the config file being used.
func ConfigFilePath() string {
	return viper.ConfigFileUsed()
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
