// Package support provides test helpers and fixtures for the caseforge CLI specs.
package support

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultsConfig represents the defaults section of config.
type DefaultsConfig struct {
	Format   string `yaml:"format,omitempty"`
	Strategy string `yaml:"strategy,omitempty"`
	Provider string `yaml:"provider,omitempty"`
}

// ServiceConfig represents the enhancer or evaluator section of config.
type ServiceConfig struct {
	URL            string `yaml:"url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Config represents the full caseforge configuration file.
type Config struct {
	Version   int             `yaml:"version"`
	Defaults  *DefaultsConfig `yaml:"defaults,omitempty"`
	Enhancer  *ServiceConfig  `yaml:"enhancer,omitempty"`
	Evaluator *ServiceConfig  `yaml:"evaluator,omitempty"`
}

// ConfigGenerator creates config and credentials files for test environments.
type ConfigGenerator struct {
	// No fields needed for now
}

// NewConfigGenerator creates a new config generator.
func NewConfigGenerator() *ConfigGenerator {
	return &ConfigGenerator{}
}

// Generate creates a project-local config file from a Config struct.
func (g *ConfigGenerator) Generate(env *TestEnv, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	// Set default version if not specified
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return env.CreateFile(filepath.Join(".caseforge", "config.yaml"), string(content))
}

// GenerateFromYAML creates a project-local config file from a YAML string.
func (g *ConfigGenerator) GenerateFromYAML(env *TestEnv, yamlContent string) error {
	// Validate the YAML is parseable
	var cfg map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return env.CreateFile(filepath.Join(".caseforge", "config.yaml"), yamlContent)
}

// GenerateDefault creates a config that keeps synthesis local.
func (g *ConfigGenerator) GenerateDefault(env *TestEnv) error {
	cfg := &Config{
		Version: 1,
		Defaults: &DefaultsConfig{
			Format:   "feature",
			Strategy: "local",
		},
	}
	return g.Generate(env, cfg)
}

// GenerateEnhanced creates a config that routes generation through an
// enhancement service at the given URL.
func (g *ConfigGenerator) GenerateEnhanced(env *TestEnv, enhancerURL string) error {
	cfg := &Config{
		Version: 1,
		Defaults: &DefaultsConfig{
			Strategy: "enhanced",
		},
		Enhancer: &ServiceConfig{
			URL: enhancerURL,
		},
	}
	return g.Generate(env, cfg)
}

// GenerateEvaluator creates a config pointing the evaluation client at the
// given sidecar URL.
func (g *ConfigGenerator) GenerateEvaluator(env *TestEnv, evaluatorURL string) error {
	cfg := &Config{
		Version: 1,
		Evaluator: &ServiceConfig{
			URL: evaluatorURL,
		},
	}
	return g.Generate(env, cfg)
}

// WriteCredentials creates a user-global credentials file inside the test
// HOME. Empty values leave the corresponding section out.
func (g *ConfigGenerator) WriteCredentials(env *TestEnv, enhancerToken, evaluatorKey string) error {
	creds := make(map[string]any)
	if enhancerToken != "" {
		creds["enhancer"] = map[string]string{"token": enhancerToken}
	}
	if evaluatorKey != "" {
		creds["evaluator"] = map[string]string{"api_key": evaluatorKey}
	}

	content, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// TestEnv points HOME at TempDir, so this is ~/.config/caseforge.
	return env.CreateFile(filepath.Join(".config", "caseforge", "credentials.yaml"), string(content))
}
