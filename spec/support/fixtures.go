// Package support provides test helpers and fixtures for the caseforge CLI specs.
package support

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StepFixture represents one test case step for fixture loading. The yaml
// tags read fixture files; the json tags write the batch wire format.
type StepFixture struct {
	Order          int    `yaml:"order" json:"order"`
	Step           string `yaml:"step" json:"step"`
	ExpectedResult string `yaml:"expected_result,omitempty" json:"expected_result,omitempty"`
	TestData       string `yaml:"test_data,omitempty" json:"test_data,omitempty"`
}

// CaseFixture represents a test case for fixture loading.
type CaseFixture struct {
	ID       string        `yaml:"id" json:"id"`
	Name     string        `yaml:"name" json:"name"`
	TestType string        `yaml:"test_type,omitempty" json:"test_type,omitempty"`
	Priority string        `yaml:"priority,omitempty" json:"priority,omitempty"`
	Steps    []StepFixture `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// StoryFixture represents optional story metadata for fixture loading.
type StoryFixture struct {
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	EpicTitle   string `yaml:"epic_title,omitempty" json:"epicTitle,omitempty"`
}

// BatchFixture represents a complete test case batch fixture.
type BatchFixture struct {
	FeatureName string        `yaml:"feature_name,omitempty" json:"featureName,omitempty"`
	LLMProvider string        `yaml:"llm_provider,omitempty" json:"llmProvider,omitempty"`
	Story       *StoryFixture `yaml:"story,omitempty" json:"story,omitempty"`
	TestCases   []CaseFixture `yaml:"test_cases" json:"testCases"`
}

// WriteJSON writes the fixture as a batch JSON file inside the test
// environment, in the format the generate command loads.
func (f *BatchFixture) WriteJSON(env *TestEnv, relativePath string) error {
	content, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch fixture: %w", err)
	}
	return env.CreateFile(relativePath, string(content)+"\n")
}

// FixtureLoader loads batch fixtures from YAML files.
type FixtureLoader struct {
	// FixturesDir is the directory containing fixture files
	FixturesDir string
}

// NewFixtureLoader creates a new fixture loader. If fixturesDir is empty,
// it defaults to "fixtures" in the spec directory. The path is resolved to
// an absolute path immediately because scenarios change the working
// directory.
func NewFixtureLoader(fixturesDir string) *FixtureLoader {
	if fixturesDir == "" {
		fixturesDir = "fixtures"
	}
	if abs, err := filepath.Abs(fixturesDir); err == nil {
		fixturesDir = abs
	}
	return &FixtureLoader{
		FixturesDir: fixturesDir,
	}
}

// Load reads the named fixture (name.yaml) from the fixtures directory.
func (l *FixtureLoader) Load(name string) (*BatchFixture, error) {
	path := filepath.Join(l.FixturesDir, name+".yaml")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %q: %w", name, err)
	}

	fixture, err := parseBatchFixture(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixture %q: %w", name, err)
	}
	return fixture, nil
}

// WriteBatchFile loads the named fixture and writes it as a batch JSON file
// inside the test environment.
func (l *FixtureLoader) WriteBatchFile(env *TestEnv, name, relativePath string) error {
	fixture, err := l.Load(name)
	if err != nil {
		return err
	}
	return fixture.WriteJSON(env, relativePath)
}

// parseBatchFixture unmarshals fixture YAML and rejects empty batches.
func parseBatchFixture(content []byte) (*BatchFixture, error) {
	var fixture BatchFixture
	if err := yaml.Unmarshal(content, &fixture); err != nil {
		return nil, err
	}
	if len(fixture.TestCases) == 0 {
		return nil, fmt.Errorf("fixture has no test cases")
	}
	return &fixture, nil
}
