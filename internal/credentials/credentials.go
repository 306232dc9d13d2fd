// Package credentials provides secure credential loading and management.
// Credentials are stored in ~/.config/caseforge/credentials.yaml with 0600
// permissions. Both services accept unauthenticated requests, so missing
// credentials are not an error.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables take priority over the credentials file.
const (
	EnvEnhancerToken = "CASEFORGE_ENHANCER_TOKEN"
	EnvEvaluatorKey  = "CASEFORGE_EVALUATOR_KEY"
)

// Credentials represents the top-level credentials structure.
type Credentials struct {
	Enhancer  *EnhancerCredentials  `yaml:"enhancer,omitempty"`
	Evaluator *EvaluatorCredentials `yaml:"evaluator,omitempty"`
}

// EnhancerCredentials holds the enhancement service bearer token.
type EnhancerCredentials struct {
	Token string `yaml:"token"`
}

// EvaluatorCredentials holds the evaluation sidecar API key.
type EvaluatorCredentials struct {
	APIKey string `yaml:"api_key"`
}

var (
	creds     *Credentials
	credsFile string
)

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "caseforge"), nil
}

// DefaultCredentialsPath returns the default credentials file path.
func DefaultCredentialsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.yaml"), nil
}

// Init initializes the credentials system by loading credentials from file.
// If the credentials file doesn't exist, an empty credentials struct is used.
// This is not an error - credentials may come from environment variables.
func Init() error {
	credPath, err := DefaultCredentialsPath()
	if err != nil {
		return err
	}
	credsFile = credPath

	// Check if file exists
	if _, err := os.Stat(credPath); os.IsNotExist(err) {
		// File doesn't exist - use empty credentials
		creds = &Credentials{}
		return nil
	}

	// Read and parse credentials file
	data, err := os.ReadFile(credPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds = &Credentials{}
	if err := yaml.Unmarshal(data, creds); err != nil {
		return fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return nil
}

// Get returns the current credentials.
// Returns nil if Init has not been called.
func Get() *Credentials {
	return creds
}

// EnhancerToken returns the enhancement service token using the following
// priority:
// 1. CASEFORGE_ENHANCER_TOKEN environment variable
// 2. credentials.yaml enhancer.token
// Returns an empty string when no token is configured.
func EnhancerToken() string {
	if token := os.Getenv(EnvEnhancerToken); token != "" {
		return token
	}
	if creds != nil && creds.Enhancer != nil {
		return creds.Enhancer.Token
	}
	return ""
}

// EvaluatorAPIKey returns the evaluation sidecar API key using the following
// priority:
// 1. CASEFORGE_EVALUATOR_KEY environment variable
// 2. credentials.yaml evaluator.api_key
// Returns an empty string when no key is configured.
func EvaluatorAPIKey() string {
	if key := os.Getenv(EnvEvaluatorKey); key != "" {
		return key
	}
	if creds != nil && creds.Evaluator != nil {
		return creds.Evaluator.APIKey
	}
	return ""
}

// SaveEnhancerToken saves an enhancement service token to the credentials
// file. Creates the file with 0600 permissions if it doesn't exist.
func SaveEnhancerToken(token string) error {
	return saveCredential(func(c *Credentials) {
		if c.Enhancer == nil {
			c.Enhancer = &EnhancerCredentials{}
		}
		c.Enhancer.Token = token
	})
}

// SaveEvaluatorAPIKey saves an evaluation sidecar API key to the credentials
// file. Creates the file with 0600 permissions if it doesn't exist.
func SaveEvaluatorAPIKey(apiKey string) error {
	return saveCredential(func(c *Credentials) {
		if c.Evaluator == nil {
			c.Evaluator = &EvaluatorCredentials{}
		}
		c.Evaluator.APIKey = apiKey
	})
}

// saveCredential saves credentials after applying the given update function.
func saveCredential(updateFn func(*Credentials)) error {
	credPath, err := DefaultCredentialsPath()
	if err != nil {
		return err
	}

	// Load existing credentials or create new
	currentCreds := &Credentials{}
	if data, err := os.ReadFile(credPath); err == nil {
		yaml.Unmarshal(data, currentCreds)
	}

	// Apply update
	updateFn(currentCreds)

	// Marshal to YAML
	data, err := yaml.Marshal(currentCreds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// Create directory if needed
	dir := filepath.Dir(credPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	// Write with secure permissions (owner read/write only)
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	// Update in-memory credentials
	creds = currentCreds

	return nil
}

// CredentialsFilePath returns the path to the credentials file being used.
func CredentialsFilePath() string {
	return credsFile
}
