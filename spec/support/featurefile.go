// Package support provides test helpers and fixtures for the caseforge CLI specs.
package support

import (
	"fmt"
	"strings"
)

// GherkinStep is one step line of a parsed feature.
type GherkinStep struct {
	Keyword string
	Text    string
}

// FeatureText wraps generated Gherkin text for structured assertions. The
// parse is line-based and intentionally forgiving: it extracts the parts
// scenarios assert on rather than validating full Gherkin grammar.
type FeatureText struct {
	// Raw is the original feature text
	Raw string

	// Title is the Feature: line title
	Title string

	// ScenarioOutlines holds the Scenario Outline titles in order
	ScenarioOutlines []string

	// Steps holds every step line in order
	Steps []GherkinStep

	// ExampleHeaders holds the header cells of the first Examples table
	ExampleHeaders []string

	// ExampleRows holds the data rows of the first Examples table
	ExampleRows [][]string

	// ExamplesBlocks counts Examples: sections
	ExamplesBlocks int

	// ParseErr is set when the text carries no Feature: line
	ParseErr error
}

var gherkinKeywords = []string{"Given", "When", "Then", "And", "But"}

// ParseFeatureText parses generated Gherkin text for assertions.
func ParseFeatureText(text string) *FeatureText {
	ft := &FeatureText{Raw: text}

	inFirstTable := false
	sawTable := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "Feature:"):
			ft.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
		case strings.HasPrefix(trimmed, "Scenario Outline:"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario Outline:"))
			ft.ScenarioOutlines = append(ft.ScenarioOutlines, name)
		case trimmed == "Examples:":
			ft.ExamplesBlocks++
			inFirstTable = !sawTable
		case strings.HasPrefix(trimmed, "|"):
			if !inFirstTable {
				continue
			}
			sawTable = true
			cells := splitTableRow(trimmed)
			if ft.ExampleHeaders == nil {
				ft.ExampleHeaders = cells
			} else {
				ft.ExampleRows = append(ft.ExampleRows, cells)
			}
		default:
			if keyword, text, ok := splitStep(trimmed); ok {
				ft.Steps = append(ft.Steps, GherkinStep{Keyword: keyword, Text: text})
			}
			if trimmed != "" && inFirstTable && sawTable {
				inFirstTable = false
			}
		}
	}

	if ft.Title == "" {
		ft.ParseErr = fmt.Errorf("no Feature: line found")
	}
	return ft
}

// ReadFeatureFile reads and parses a feature file from the test environment.
func ReadFeatureFile(env *TestEnv, relativePath string) (*FeatureText, error) {
	content, err := env.ReadFile(relativePath)
	if err != nil {
		return nil, err
	}
	return ParseFeatureText(content), nil
}

// Valid returns true if the text parsed as a feature.
func (ft *FeatureText) Valid() bool {
	return ft.ParseErr == nil
}

// Error returns the parse error message, or empty string if valid.
func (ft *FeatureText) Error() string {
	if ft.ParseErr == nil {
		return ""
	}
	return ft.ParseErr.Error()
}

// ScenarioCount returns the number of Scenario Outline blocks.
func (ft *FeatureText) ScenarioCount() int {
	return len(ft.ScenarioOutlines)
}

// HasStep reports whether a step with the given keyword and text exists.
func (ft *FeatureText) HasStep(keyword, text string) bool {
	for _, s := range ft.Steps {
		if s.Keyword == keyword && s.Text == text {
			return true
		}
	}
	return false
}

// StepsWithKeyword returns the texts of all steps using the keyword.
func (ft *FeatureText) StepsWithKeyword(keyword string) []string {
	var texts []string
	for _, s := range ft.Steps {
		if s.Keyword == keyword {
			texts = append(texts, s.Text)
		}
	}
	return texts
}

// ExampleColumn returns the values of the named Examples column in row
// order. Returns nil if the column does not exist.
func (ft *FeatureText) ExampleColumn(name string) []string {
	idx := -1
	for i, h := range ft.ExampleHeaders {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var values []string
	for _, row := range ft.ExampleRows {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values
}

// HasExampleColumn reports whether the Examples table has the named column.
func (ft *FeatureText) HasExampleColumn(name string) bool {
	for _, h := range ft.ExampleHeaders {
		if h == name {
			return true
		}
	}
	return false
}

// splitTableRow splits "| a | b |" into trimmed cells.
func splitTableRow(line string) []string {
	parts := strings.Split(line, "|")
	// Drop the empty fragments before the first and after the last pipe
	if len(parts) >= 2 {
		parts = parts[1 : len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// splitStep splits a trimmed line into a Gherkin keyword and step text.
func splitStep(trimmed string) (keyword, text string, ok bool) {
	for _, kw := range gherkinKeywords {
		if strings.HasPrefix(trimmed, kw+" ") {
			return kw, strings.TrimSpace(strings.TrimPrefix(trimmed, kw)), true
		}
	}
	return "", "", false
}
