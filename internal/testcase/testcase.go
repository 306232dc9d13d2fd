// Package testcase defines the test case batch model consumed by the
// synthesis pipeline.
package testcase

// Step is a single ordered action within a test case.
type Step struct {
	// Order is the author-assigned sequence number. Classification uses
	// slice position, not this field.
	Order int `json:"order" yaml:"order"`

	// Step is the action text.
	Step string `json:"step" yaml:"step"`

	// ExpectedResult describes the outcome to check after the action.
	ExpectedResult string `json:"expected_result,omitempty" yaml:"expected_result,omitempty"`

	// TestData optionally carries a "key: value" pair that feeds the
	// Examples table.
	TestData string `json:"test_data,omitempty" yaml:"test_data,omitempty"`
}

// TestCase is one manual test case with its ordered steps.
type TestCase struct {
	// ID is the unique identifier within a batch.
	ID string `json:"id" yaml:"id"`

	// Name is a short summary of the test case.
	Name string `json:"name" yaml:"name"`

	// ShortDescription is a one-line description.
	ShortDescription string `json:"short_description,omitempty" yaml:"short_description,omitempty"`

	// Description is the full description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TestType is a free-form category such as "functional" or "regression".
	TestType string `json:"test_type,omitempty" yaml:"test_type,omitempty"`

	// Priority is a free-form priority label.
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`

	// State is the workflow state of the test case.
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// Steps are the ordered actions of the test case.
	Steps []Step `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Story is optional reference metadata attached to a batch.
type Story struct {
	// Title is the story title, used as the feature title when no explicit
	// feature name is set.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is rendered under the feature header.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// EpicTitle is rendered as an Epic line under the feature header.
	EpicTitle string `json:"epicTitle,omitempty" yaml:"epic_title,omitempty"`
}

// Batch is an ordered collection of test cases synthesized into one feature.
// The JSON tags follow the camelCase wire format shared with the enhancement
// service; the YAML tags follow the snake_case convention of the config file.
type Batch struct {
	// TestCases are rendered in slice order.
	TestCases []TestCase `json:"testCases" yaml:"test_cases"`

	// Story optionally supplies feature-level metadata.
	Story *Story `json:"story,omitempty" yaml:"story,omitempty"`

	// FeatureName overrides the feature title when non-empty.
	FeatureName string `json:"featureName,omitempty" yaml:"feature_name,omitempty"`

	// LLMProvider hints which provider the enhancement service should use.
	LLMProvider string `json:"llmProvider,omitempty" yaml:"llm_provider,omitempty"`
}

// Stats summarizes a rendered feature file.
type Stats struct {
	// Lines is the newline-delimited line count of the feature text.
	Lines int `json:"lines"`

	// Scenarios is the number of Scenario Outline blocks.
	Scenarios int `json:"scenarios"`

	// ExamplesCount is reported by the enhancement service; local synthesis
	// leaves it zero.
	ExamplesCount int `json:"examplesCount"`
}

// Rendered is the product of a synthesis strategy.
type Rendered struct {
	// FeatureFile is the complete Gherkin text.
	FeatureFile string `json:"featureFile"`

	// Stats summarizes the feature text.
	Stats Stats `json:"stats"`
}
