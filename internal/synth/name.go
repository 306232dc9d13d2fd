package synth

import "github.com/caseforge/caseforge/internal/testcase"

// ScenarioName derives the Scenario Outline title from batch composition:
// a single test case is named after itself, a batch with one distinct test
// type after that type, and a mixed batch generically.
func ScenarioName(cases []testcase.TestCase) string {
	if len(cases) == 1 {
		return "Verify " + cases[0].Name
	}

	types := make(map[string]struct{})
	for _, tc := range cases {
		types[tc.TestType] = struct{}{}
	}
	if len(types) == 1 {
		for t := range types {
			return "Execute " + t + " test scenarios"
		}
	}
	return "Execute multiple test scenarios"
}
