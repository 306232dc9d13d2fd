package synth

import (
	"regexp"
	"strings"
)

// clauseSeparators splits a compound expected result into clauses: on
// semicolons, on the word "and" surrounded by whitespace, or on a period
// followed by optional whitespace.
var clauseSeparators = regexp.MustCompile(`;|\s+and\s+|\.\s*`)

// assertionVerbs mark a clause as already phrased as an assertion.
var assertionVerbs = []string{"verify", "check", "validate", "ensure", "confirm", "assert", "should"}

// verbHeuristics pick a prefix for clauses that lack an assertion verb.
// Groups are checked in order; the first keyword contained in the lowercased
// clause wins.
var verbHeuristics = []struct {
	keywords []string
	verb     string
}{
	{[]string{"disabled", "hidden", "not "}, "Verify"},
	{[]string{"show", "display", "appear"}, "Verify"},
	{[]string{"error", "message"}, "Check"},
}

// SplitAssertions breaks an expected result into individual assertion
// clauses, each starting with an assertion verb. Blank input yields nil.
func SplitAssertions(expectedResult string) []string {
	if strings.TrimSpace(expectedResult) == "" {
		return nil
	}

	var clauses []string
	for _, part := range clauseSeparators.Split(expectedResult, -1) {
		clause := strings.TrimSpace(part)
		if clause == "" {
			continue
		}
		if !startsWithAssertionVerb(clause) {
			clause = assertionVerb(clause) + " " + clause
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

func startsWithAssertionVerb(clause string) bool {
	lower := strings.ToLower(clause)
	for _, verb := range assertionVerbs {
		if strings.HasPrefix(lower, verb) {
			return true
		}
	}
	return false
}

func assertionVerb(clause string) string {
	lower := strings.ToLower(clause)
	for _, group := range verbHeuristics {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.verb
			}
		}
	}
	return "Verify"
}
