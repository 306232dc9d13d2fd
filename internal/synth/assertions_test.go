package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAssertionsSeparators(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{
			"semicolon, and, period",
			"A; B and C.",
			[]string{"Verify A", "Verify B", "Verify C"},
		},
		{
			"period without trailing space",
			"Dashboard loads.Widgets render",
			[]string{"Verify Dashboard loads", "Verify Widgets render"},
		},
		{
			"the word and requires surrounding whitespace",
			"Android app responds",
			[]string{"Verify Android app responds"},
		},
		{
			"only separators",
			"; .",
			nil,
		},
		{
			"clauses are trimmed",
			"  first outcome ;   second outcome  ",
			[]string{"Verify first outcome", "Verify second outcome"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAssertions(tt.in))
		})
	}
}

func TestSplitAssertionsKeepsExistingVerbs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"verify kept", "Verify the header is visible", []string{"Verify the header is visible"}},
		{"lowercase should kept", "should see the banner", []string{"should see the banner"}},
		{"ensure kept", "Ensure totals match", []string{"Ensure totals match"}},
		{
			"mixed prefixed and bare",
			"Check the footer; totals match",
			[]string{"Check the footer", "Verify totals match"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAssertions(tt.in))
		})
	}
}

func TestSplitAssertionsVerbHeuristics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"disabled", "The button is disabled", "Verify The button is disabled"},
		{"hidden", "The panel is hidden", "Verify The panel is hidden"},
		{"negation beats error", "An error is not present", "Verify An error is not present"},
		{"appear beats error", "An error appears in the log", "Verify An error appears in the log"},
		{"shown", "Dashboard is shown", "Verify Dashboard is shown"},
		{"display", "The receipt is displayed", "Verify The receipt is displayed"},
		{"error", "The error field is populated", "Check The error field is populated"},
		{"message", "A message is logged", "Check A message is logged"},
		{"default", "The record is saved", "Verify The record is saved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAssertions(tt.in)
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}
