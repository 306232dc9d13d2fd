package synth

import "github.com/caseforge/caseforge/internal/testcase"

// Classification buckets a test case's steps into Gherkin keywords.
type Classification struct {
	Given []string
	When  []string
	Then  []ThenStep
}

// ThenStep is an outcome step together with the assertion clauses derived
// from its expected result.
type ThenStep struct {
	Text       string
	Assertions []string
}

// Classify assigns steps to Given/When/Then by relative slice position:
// the first third of a test case sets context, the middle third acts, the
// final third asserts. A single step is a Given. The author-assigned order
// field is ignored; slice position is authoritative.
func Classify(steps []testcase.Step) Classification {
	var c Classification
	n := len(steps)
	for i, s := range steps {
		var ratio float64
		if n > 1 {
			ratio = float64(i) / float64(n-1)
		}
		switch {
		case ratio < 0.33:
			c.Given = append(c.Given, s.Step)
		case ratio < 0.67:
			c.When = append(c.When, s.Step)
		default:
			c.Then = append(c.Then, ThenStep{
				Text:       s.Step,
				Assertions: SplitAssertions(s.ExpectedResult),
			})
		}
	}
	return c
}
