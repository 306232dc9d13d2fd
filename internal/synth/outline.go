package synth

import (
	"strings"

	"github.com/caseforge/caseforge/internal/testcase"
)

// defaultFeatureTitle is used when neither the batch nor its story carries
// a title.
const defaultFeatureTitle = "Generated Feature"

// Synthesize renders a batch into a single Scenario Outline feature file
// and computes its stats. ExamplesCount is left zero; only the enhancement
// service reports it.
func Synthesize(batch *testcase.Batch) *testcase.Rendered {
	var b strings.Builder

	b.WriteString("Feature: " + featureTitle(batch) + "\n")
	if batch.Story != nil {
		if batch.Story.EpicTitle != "" {
			b.WriteString("  Epic: " + batch.Story.EpicTitle + "\n")
		}
		if batch.Story.Description != "" {
			b.WriteString("  " + batch.Story.Description + "\n")
		}
	}
	b.WriteString("\n")

	if len(batch.TestCases) > 0 {
		b.WriteString("  Scenario Outline: " + ScenarioName(batch.TestCases) + "\n")
		writeSteps(&b, batch.TestCases)
		writeExamples(&b, batch.TestCases)
	}

	text := b.String()
	return &testcase.Rendered{
		FeatureFile: text,
		Stats: testcase.Stats{
			Lines:     len(strings.Split(text, "\n")),
			Scenarios: strings.Count(text, "Scenario Outline:"),
		},
	}
}

func featureTitle(batch *testcase.Batch) string {
	if batch.FeatureName != "" {
		return batch.FeatureName
	}
	if batch.Story != nil && batch.Story.Title != "" {
		return batch.Story.Title
	}
	return defaultFeatureTitle
}

// writeSteps merges the classified steps of every test case into one
// outline: all Givens, then all Whens, then all Thens. The first outcome
// keeps the Then keyword, the rest become And, and each outcome is followed
// by its assertion clauses as And lines.
func writeSteps(b *strings.Builder, cases []testcase.TestCase) {
	var given, when []string
	var then []ThenStep
	for _, tc := range cases {
		c := Classify(tc.Steps)
		given = append(given, c.Given...)
		when = append(when, c.When...)
		then = append(then, c.Then...)
	}

	for _, s := range given {
		b.WriteString("    Given " + s + "\n")
	}
	for _, s := range when {
		b.WriteString("    When " + s + "\n")
	}
	for i, s := range then {
		keyword := "Then"
		if i > 0 {
			keyword = "And"
		}
		b.WriteString("    " + keyword + " " + s.Text + "\n")
		for _, a := range s.Assertions {
			b.WriteString("    And " + a + "\n")
		}
	}
}

// writeExamples renders the Examples table with one row per test case in
// batch order. Cells never populated for a case render as "-".
func writeExamples(b *strings.Builder, cases []testcase.TestCase) {
	table := BuildExampleTable(cases)
	if table.Empty() {
		return
	}

	b.WriteString("\n    Examples:\n")
	b.WriteString("      | " + strings.Join(table.Columns(), " | ") + " |\n")
	for _, tc := range cases {
		row := make([]string, 0, len(table.Columns()))
		for _, col := range table.Columns() {
			cell, ok := table.Cell(col, tc.ID)
			if !ok {
				cell = "-"
			}
			row = append(row, cell)
		}
		b.WriteString("      | " + strings.Join(row, " | ") + " |\n")
	}
}
