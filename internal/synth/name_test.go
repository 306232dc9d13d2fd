package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseforge/caseforge/internal/testcase"
)

func TestScenarioName(t *testing.T) {
	tests := []struct {
		name  string
		cases []testcase.TestCase
		want  string
	}{
		{
			"single case named after itself",
			[]testcase.TestCase{{Name: "User Login", TestType: "functional"}},
			"Verify User Login",
		},
		{
			"homogeneous batch named after the type",
			[]testcase.TestCase{
				{Name: "A", TestType: "regression"},
				{Name: "B", TestType: "regression"},
			},
			"Execute regression test scenarios",
		},
		{
			"mixed batch named generically",
			[]testcase.TestCase{
				{Name: "A", TestType: "functional"},
				{Name: "B", TestType: "regression"},
			},
			"Execute multiple test scenarios",
		},
		{
			"test types are compared verbatim",
			[]testcase.TestCase{
				{Name: "A", TestType: "Functional"},
				{Name: "B", TestType: "functional"},
			},
			"Execute multiple test scenarios",
		},
		{
			"no cases",
			nil,
			"Execute multiple test scenarios",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScenarioName(tt.cases))
		})
	}
}
